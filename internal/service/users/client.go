package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

const defaultTimeout = 3 * time.Second

// Client — HTTP-резолвер пользователей против User Directory.
// Один запрос на резолюцию: без ретраев, без кэша. Транспортные ошибки
// нормализуются в исход и не покидают клиент.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент с таймаутом на каждый исходящий запрос.
// timeout <= 0 заменяется значением по умолчанию.
func NewClient(baseURL string, timeout time.Duration, logger *log.Entry) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.WithField("component", "users-client")
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ResolveUser выполняет GET /api/users/{id} и возвращает нормализованный исход.
// Не-200 ответ — ResolutionNotFound; недоступность сервиса или нечитаемое
// тело — ResolutionUnreachable. Для вызывающего кода оба означают отсутствие.
func (c *Client) ResolveUser(ctx context.Context, id int64) domain.UserResolution {
	start := time.Now()
	resolution := c.resolve(ctx, id)
	metrics.ObserveResolution(metrics.KindUser, string(resolution.Outcome), time.Since(start))

	if resolution.Outcome == domain.ResolutionUnreachable {
		c.logger.WithField("user_id", id).Warn("user directory unreachable")
	}
	return resolution
}

func (c *Client) resolve(ctx context.Context, id int64) domain.UserResolution {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.UserResolution{Outcome: domain.ResolutionUnreachable}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.UserResolution{Outcome: domain.ResolutionUnreachable}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(log.Fields{
			"user_id": id,
			"status":  resp.StatusCode,
		}).Debug("user directory returned non-200")
		return domain.UserResolution{Outcome: domain.ResolutionNotFound}
	}

	var user domain.UserView
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.UserResolution{Outcome: domain.ResolutionUnreachable}
	}

	return domain.UserResolution{Outcome: domain.ResolutionFound, User: user}
}

var _ domain.UserDirectory = (*Client)(nil)

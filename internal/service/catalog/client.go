package catalog

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

// Client — HTTP-резолвер товаров против каталога. Контракт совпадает с
// резолвером пользователей: один запрос, нормализованный исход, цена
// берётся из тела ответа как есть.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент каталога с таймаутом на каждый запрос.
func NewClient(baseURL string, timeout time.Duration, logger *log.Entry) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.WithField("component", "catalog-client")
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ResolveProduct выполняет GET /api/products/{id} и нормализует результат.
func (c *Client) ResolveProduct(ctx context.Context, id int64) domain.ProductResolution {
	start := time.Now()
	resolution := c.resolve(ctx, id)
	metrics.ObserveResolution(metrics.KindProduct, string(resolution.Outcome), time.Since(start))

	if resolution.Outcome == domain.ResolutionUnreachable {
		c.logger.WithField("product_id", id).Warn("catalog unreachable")
	}
	return resolution
}

func (c *Client) resolve(ctx context.Context, id int64) domain.ProductResolution {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProductResolution{Outcome: domain.ResolutionUnreachable}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.ProductResolution{Outcome: domain.ResolutionUnreachable}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(log.Fields{
			"product_id": id,
			"status":     resp.StatusCode,
		}).Debug("catalog returned non-200")
		return domain.ProductResolution{Outcome: domain.ResolutionNotFound}
	}

	var product domain.ProductView
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return domain.ProductResolution{Outcome: domain.ResolutionUnreachable}
	}

	return domain.ProductResolution{Outcome: domain.ResolutionFound, Product: product}
}

var _ domain.Catalog = (*Client)(nil)

package enrichment

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Engine собирает EnrichedOrder из строки заказа и свежих резолюций
// пользователя и товара. Чтение никогда не падает из-за внешнего сервиса:
// отсутствие данных выражается заглушкой внутри ответа.
type Engine struct {
	users   domain.UserDirectory
	catalog domain.Catalog
	logger  *log.Entry
}

// NewEngine создаёт движок обогащения.
func NewEngine(users domain.UserDirectory, catalog domain.Catalog, logger *log.Entry) *Engine {
	if logger == nil {
		logger = log.WithField("component", "enrichment")
	}
	return &Engine{users: users, catalog: catalog, logger: logger}
}

// Enrich резолвит обе ссылки заказа параллельно и подставляет заглушки
// вместо нерезолвленных представлений. Ошибок наружу не возвращает.
func (e *Engine) Enrich(ctx context.Context, order domain.Order) domain.EnrichedOrder {
	var (
		userRes    domain.UserResolution
		productRes domain.ProductResolution
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		userRes = e.users.ResolveUser(ctx, order.UserID)
	}()
	go func() {
		defer wg.Done()
		productRes = e.catalog.ResolveProduct(ctx, order.ProductID)
	}()
	wg.Wait()

	enriched := domain.EnrichedOrder{Order: order}

	if userRes.Found() {
		enriched.User = userRes.User
	} else {
		enriched.User = domain.UnknownUser(order.UserID)
		e.logger.WithFields(log.Fields{
			"order_id": order.ID,
			"user_id":  order.UserID,
			"outcome":  userRes.Outcome,
		}).Warn("user reference did not resolve, using placeholder")
	}

	if productRes.Found() {
		enriched.Product = productRes.Product
	} else {
		enriched.Product = domain.UnknownProduct(order.ProductID)
		e.logger.WithFields(log.Fields{
			"order_id":   order.ID,
			"product_id": order.ProductID,
			"outcome":    productRes.Outcome,
		}).Warn("product reference did not resolve, using placeholder")
	}

	return enriched
}

// EnrichAll обогащает все строки параллельно, сохраняя исходный порядок.
// Единственная ошибка, которая может прервать пакет, — отмена контекста:
// отказы резолюции превращаются в заглушки до точки соединения.
func (e *Engine) EnrichAll(ctx context.Context, orders []domain.Order) ([]domain.EnrichedOrder, error) {
	enriched := make([]domain.EnrichedOrder, len(orders))

	g, ctx := errgroup.WithContext(ctx)
	for i, order := range orders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			enriched[i] = e.Enrich(ctx, order)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

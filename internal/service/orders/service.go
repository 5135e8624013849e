package orders

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/service/enrichment"
)

// Service реализует операции над заказами поверх репозитория, резолверов
// и движка обогащения. Запись строгая: заказ создаётся только когда обе
// ссылки резолвятся. Чтение мягкое: отсутствие внешних данных деградирует
// в заглушки внутри ответа.
type Service struct {
	repo     domain.OrderRepository
	users    domain.UserDirectory
	catalog  domain.Catalog
	enricher *enrichment.Engine
	events   domain.EventPublisher
	logger   *log.Entry
}

// NewService конструирует сервис без публикации событий.
func NewService(
	repo domain.OrderRepository,
	users domain.UserDirectory,
	catalog domain.Catalog,
	enricher *enrichment.Engine,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		repo:     repo,
		users:    users,
		catalog:  catalog,
		enricher: enricher,
		logger:   logger,
	}
}

// NewServiceWithEvents конструирует сервис, публикующий события жизненного
// цикла заказа через переданный publisher.
func NewServiceWithEvents(
	repo domain.OrderRepository,
	users domain.UserDirectory,
	catalog domain.Catalog,
	enricher *enrichment.Engine,
	events domain.EventPublisher,
	logger *log.Entry,
) *Service {
	svc := NewService(repo, users, catalog, enricher, logger)
	svc.events = events
	return svc
}

// Create валидирует вход, резолвит обе ссылки и сохраняет заказ.
// Обе резолюции выполняются параллельно и завершаются до оценки результата;
// недоступность внешнего сервиса на этом пути трактуется как отсутствие
// сущности (fail-closed). До успешной резолюции запись не выполняется.
func (s *Service) Create(ctx context.Context, in domain.CreateOrderInput) (domain.Order, error) {
	if errs := in.Validate(); len(errs) > 0 {
		metrics.RecordOrderRejected(metrics.ReasonInvalidInput)
		return domain.Order{}, errs[0]
	}

	var (
		userRes    domain.UserResolution
		productRes domain.ProductResolution
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		userRes = s.users.ResolveUser(ctx, in.UserID)
	}()
	go func() {
		defer wg.Done()
		productRes = s.catalog.ResolveProduct(ctx, in.ProductID)
	}()
	wg.Wait()

	if !userRes.Found() {
		metrics.RecordOrderRejected(metrics.ReasonUserNotFound)
		s.logger.WithFields(log.Fields{
			"user_id": in.UserID,
			"outcome": userRes.Outcome,
		}).Info("order rejected: user reference did not resolve")
		return domain.Order{}, domain.ErrUserNotFound
	}
	if !productRes.Found() {
		metrics.RecordOrderRejected(metrics.ReasonProductNotFound)
		s.logger.WithFields(log.Fields{
			"product_id": in.ProductID,
			"outcome":    productRes.Outcome,
		}).Info("order rejected: product reference did not resolve")
		return domain.Order{}, domain.ErrProductNotFound
	}

	order := domain.Order{
		UserID:     in.UserID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		TotalPrice: domain.TotalFor(productRes.Product.Price, in.Quantity),
		Status:     domain.OrderStatusPending,
	}

	created, err := s.repo.Insert(order)
	if err != nil {
		metrics.RecordOrderRejected(metrics.ReasonStoreFailure)
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	metrics.RecordOrderCreated()
	s.logger.WithFields(log.Fields{
		"order_id":    created.ID,
		"user_id":     created.UserID,
		"product_id":  created.ProductID,
		"total_price": created.TotalPrice.StringFixed(2),
	}).Info("order created")

	s.publishEvent(kafka.EventTypeOrderCreated, created)
	return created, nil
}

// Get возвращает обогащённый заказ. Для несуществующего идентификатора
// резолвер не вызывается ни разу.
func (s *Service) Get(ctx context.Context, id int64) (domain.EnrichedOrder, error) {
	order, err := s.repo.Get(id)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}
	return s.enricher.Enrich(ctx, order), nil
}

// List возвращает все заказы с обогащением, сохраняя порядок хранилища.
func (s *Service) List(ctx context.Context) ([]domain.EnrichedOrder, error) {
	orders, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.enricher.EnrichAll(ctx, orders)
}

// UpdateStatus меняет статус заказа. Словарь статусов не проверяется:
// принимается любая непустая строка.
func (s *Service) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	if status == "" {
		return domain.Order{}, domain.ErrStatusRequired
	}

	updated, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.WithFields(log.Fields{
		"order_id": updated.ID,
		"status":   updated.Status,
	}).Info("order status updated")

	s.publishEvent(kafka.EventTypeOrderStatusChanged, updated)
	return updated, nil
}

// Delete удаляет заказ безусловно: состояние внешних сервисов не проверяется.
func (s *Service) Delete(_ context.Context, id int64) (domain.Order, error) {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.WithField("order_id", deleted.ID).Info("order deleted")

	s.publishEvent(kafka.EventTypeOrderDeleted, deleted)
	return deleted, nil
}

func (s *Service) publishEvent(eventType string, order domain.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(eventType, order); err != nil {
		metrics.RecordEventPublish("error")
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   order.ID,
			"event_type": eventType,
		}).Warn("failed to publish order event")
		return
	}
	metrics.RecordEventPublish("ok")
}

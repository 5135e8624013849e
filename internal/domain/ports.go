package domain

import "context"

// UserDirectory описывает резолвер пользователей. Реализация обязана
// нормализовать транспортные ошибки в исход резолюции: метод не возвращает error,
// отсутствие данных выражается тегом Outcome.
type UserDirectory interface {
	// ResolveUser выполняет один запрос к сервису пользователей.
	ResolveUser(ctx context.Context, id int64) UserResolution
}

// Catalog описывает резолвер товаров. Контракт тот же, что у UserDirectory:
// один запрос, нормализованный исход, никакие сырые ошибки наружу не выходят.
type Catalog interface {
	// ResolveProduct выполняет один запрос к каталогу.
	ResolveProduct(ctx context.Context, id int64) ProductResolution
}

// EventPublisher публикует события жизненного цикла заказа.
// Публикация best-effort: ошибка логируется вызывающим кодом и не влияет на ответ API.
type EventPublisher interface {
	PublishOrderEvent(eventType string, order Order) error
}

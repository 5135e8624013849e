package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Типы событий жизненного цикла заказа.
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeOrderDeleted       = "order.deleted"
)

// TopicOrderEvents — единственный топик для событий заказов.
const TopicOrderEvents = "orders.events"

// OrderEvent — конверт публикуемого события. TotalPrice сериализуется
// строкой с двумя знаками, чтобы консьюмеры не зависели от float-представления.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewOrderEvent собирает конверт события из строки заказа.
func NewOrderEvent(eventType string, order domain.Order) OrderEvent {
	return OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice.StringFixed(2),
		Status:     string(order.Status),
		Timestamp:  time.Now().UTC(),
	}
}

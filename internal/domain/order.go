package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает метку состояния заказа. Словарь не фиксирован:
// при обновлении принимается любая непустая строка.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, дальнейшая обработка ещё не началась.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен покупателю.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order — строка заказа, как её хранит репозиторий. ID и CreatedAt
// назначаются хранилищем при вставке.
type Order struct {
	ID         int64
	UserID     int64
	ProductID  int64
	Quantity   int32
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
}

// UserView — представление пользователя из User Directory.
// Ядру важен только факт существования; остальные поля — отображаемые атрибуты.
type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ProductView — представление товара из каталога. Price обязателен:
// из него считается итоговая сумма заказа.
type ProductView struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// EnrichedOrder — заказ, дополненный актуальными представлениями пользователя
// и товара. Собирается заново на каждое чтение и никогда не сохраняется.
type EnrichedOrder struct {
	Order
	User    UserView
	Product ProductView
}

// UnknownUser возвращает заглушку для нерезолвленного пользователя.
// Заглушка сохраняет исходный идентификатор ссылки.
func UnknownUser(id int64) UserView {
	return UserView{ID: id, Name: "Unknown User"}
}

// UnknownProduct возвращает заглушку для нерезолвленного товара.
func UnknownProduct(id int64) ProductView {
	return ProductView{ID: id, Name: "Unknown Product"}
}

// CreateOrderInput — входные данные на создание заказа.
type CreateOrderInput struct {
	UserID    int64
	ProductID int64
	Quantity  int32
}

// Validate проверяет присутствие обязательных полей и возвращает список замечаний.
// Ссылки не проверяются локально: это делает резолвер против внешних сервисов.
func (in CreateOrderInput) Validate() []error {
	var errs []error

	if in.UserID <= 0 {
		errs = append(errs, ErrUserIDRequired)
	}
	if in.ProductID <= 0 {
		errs = append(errs, ErrProductIDRequired)
	}
	if in.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}

	return errs
}

// TotalFor считает итоговую сумму заказа: цена товара, умноженная на количество,
// округлённая до двух знаков. Цена берётся из свежей резолюции каталога.
func TotalFor(price decimal.Decimal, quantity int32) decimal.Decimal {
	return price.Mul(decimal.NewFromInt32(quantity)).Round(2)
}

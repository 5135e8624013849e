package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора пользователя.
	ErrUserIDRequired = errors.New("user_id is required")
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product_id is required")
	// Ошибка отсутствующего или некорректного количества (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка пустого статуса при обновлении.
	ErrStatusRequired = errors.New("status is required")
	// ErrUserNotFound возвращается, если ссылка на пользователя не резолвится.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound возвращается, если ссылка на товар не резолвится.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказа нет в репозитории.
	ErrOrderNotFound = errors.New("order not found")
)

// IsInvalidInput проверяет, относится ли ошибка к отсутствующим полям запроса.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrUserIDRequired) ||
		errors.Is(err, ErrProductIDRequired) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrStatusRequired)
}

// IsRejection проверяет, является ли ошибка отказом по ссылкам:
// пользователь или товар не были найдены во внешнем сервисе.
func IsRejection(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrProductNotFound)
}

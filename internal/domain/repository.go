package domain

// OrderRepository описывает требования к хранилищу заказов.
// Все операции — атомарные однострочные; многострочных транзакций ядру не нужно.
type OrderRepository interface {
	// Insert сохраняет новый заказ и возвращает строку с назначенными ID и CreatedAt.
	Insert(order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id int64) (Order, error)
	// List возвращает все заказы, упорядоченные по возрастанию идентификатора.
	List() ([]Order, error)
	// UpdateStatus меняет статус и возвращает обновлённую строку либо ErrOrderNotFound.
	UpdateStatus(id int64, status OrderStatus) (Order, error)
	// Delete удаляет заказ и возвращает его прежнее состояние либо ErrOrderNotFound.
	Delete(id int64) (Order, error)
}

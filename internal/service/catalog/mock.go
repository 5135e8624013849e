package catalog

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// MockCatalog — конфигурируемая заглушка Catalog для тестов.
type MockCatalog struct {
	mu          sync.Mutex
	Products    map[int64]domain.ProductView
	Unreachable bool
	Calls       int
}

// NewMockCatalog возвращает пустую заглушку (любая ссылка — NotFound).
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{Products: make(map[int64]domain.ProductView)}
}

// Add регистрирует товар в заглушке.
func (m *MockCatalog) Add(product domain.ProductView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Products[product.ID] = product
}

// ResolveProduct возвращает настроенный исход и считает вызовы.
func (m *MockCatalog) ResolveProduct(_ context.Context, id int64) domain.ProductResolution {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	if m.Unreachable {
		return domain.ProductResolution{Outcome: domain.ResolutionUnreachable}
	}
	if product, ok := m.Products[id]; ok {
		return domain.ProductResolution{Outcome: domain.ResolutionFound, Product: product}
	}
	return domain.ProductResolution{Outcome: domain.ResolutionNotFound}
}

// CallCount возвращает число выполненных резолюций.
func (m *MockCatalog) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

var _ domain.Catalog = (*MockCatalog)(nil)

package users

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// MockDirectory — конфигурируемая заглушка UserDirectory для тестов.
// Возвращает Found для пользователей из Users, NotFound для остальных,
// Unreachable — если выставлен флаг.
type MockDirectory struct {
	mu          sync.Mutex
	Users       map[int64]domain.UserView
	Unreachable bool
	Calls       int
}

// NewMockDirectory возвращает пустую заглушку (любая ссылка — NotFound).
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{Users: make(map[int64]domain.UserView)}
}

// Add регистрирует пользователя в заглушке.
func (m *MockDirectory) Add(user domain.UserView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.ID] = user
}

// ResolveUser возвращает настроенный исход и считает вызовы.
func (m *MockDirectory) ResolveUser(_ context.Context, id int64) domain.UserResolution {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	if m.Unreachable {
		return domain.UserResolution{Outcome: domain.ResolutionUnreachable}
	}
	if user, ok := m.Users[id]; ok {
		return domain.UserResolution{Outcome: domain.ResolutionFound, User: user}
	}
	return domain.UserResolution{Outcome: domain.ResolutionNotFound}
}

// CallCount возвращает число выполненных резолюций.
func (m *MockDirectory) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

var _ domain.UserDirectory = (*MockDirectory)(nil)

package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("ORDERS_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("ORDERS_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if _, err := store.DB().ExecContext(ctx, `TRUNCATE orders RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate orders: %v", err)
	}

	return store
}

func TestOrderRepository_Lifecycle(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	created, err := repo.Insert(domain.Order{
		UserID:     1,
		ProductID:  2,
		Quantity:   3,
		TotalPrice: decimal.RequireFromString("59.97"),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("store must assign id and created_at, got %+v", created)
	}
	if created.Status != domain.OrderStatusPending {
		t.Fatalf("expected default pending status, got %s", created.Status)
	}

	fetched, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !fetched.TotalPrice.Equal(created.TotalPrice) {
		t.Fatalf("expected total %s, got %s", created.TotalPrice, fetched.TotalPrice)
	}

	second, err := repo.Insert(domain.Order{UserID: 1, ProductID: 2, Quantity: 1, TotalPrice: decimal.RequireFromString("19.99")})
	if err != nil {
		t.Fatalf("insert second: %v", err)
	}
	if second.ID <= created.ID {
		t.Fatalf("ids must ascend: %d after %d", second.ID, created.ID)
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != created.ID || all[1].ID != second.ID {
		t.Fatalf("unexpected list order: %+v", all)
	}

	updated, err := repo.UpdateStatus(created.ID, "shipped")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != "shipped" || updated.Quantity != created.Quantity {
		t.Fatalf("unexpected updated row: %+v", updated)
	}

	deleted, err := repo.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Status != "shipped" {
		t.Fatalf("delete must return prior state, got %+v", deleted)
	}

	if _, err := repo.Delete(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("second delete must be ErrOrderNotFound, got %v", err)
	}
	if _, err := repo.Get(created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("get after delete must be ErrOrderNotFound, got %v", err)
	}
	if _, err := repo.UpdateStatus(created.ID, "shipped"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("update after delete must be ErrOrderNotFound, got %v", err)
	}
}

package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateOrderInput_ValidateOK(t *testing.T) {
	in := CreateOrderInput{UserID: 1, ProductID: 2, Quantity: 3}

	if errs := in.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestCreateOrderInput_ValidateMissingFields(t *testing.T) {
	in := CreateOrderInput{}

	errs := in.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], ErrUserIDRequired) {
		t.Errorf("expected ErrUserIDRequired first, got %v", errs[0])
	}
	if !errors.Is(errs[1], ErrProductIDRequired) {
		t.Errorf("expected ErrProductIDRequired second, got %v", errs[1])
	}
	if !errors.Is(errs[2], ErrQuantityInvalid) {
		t.Errorf("expected ErrQuantityInvalid third, got %v", errs[2])
	}
}

func TestCreateOrderInput_ValidateNegativeQuantity(t *testing.T) {
	in := CreateOrderInput{UserID: 1, ProductID: 2, Quantity: -1}

	errs := in.Validate()
	if len(errs) != 1 || !errors.Is(errs[0], ErrQuantityInvalid) {
		t.Fatalf("expected single ErrQuantityInvalid, got %v", errs)
	}
}

func TestTotalFor(t *testing.T) {
	price := decimal.RequireFromString("19.99")

	total := TotalFor(price, 3)
	if total.StringFixed(2) != "59.97" {
		t.Fatalf("expected total 59.97, got %s", total.StringFixed(2))
	}
}

func TestTotalFor_Rounding(t *testing.T) {
	// NUMERIC(12,2) в хранилище: сумма всегда приводится к двум знакам.
	price := decimal.RequireFromString("0.333")

	total := TotalFor(price, 3)
	if total.StringFixed(2) != "1.00" {
		t.Fatalf("expected total 1.00, got %s", total.StringFixed(2))
	}
}

func TestUnknownPlaceholders(t *testing.T) {
	user := UnknownUser(42)
	if user.ID != 42 || user.Name != "Unknown User" {
		t.Fatalf("unexpected user placeholder: %+v", user)
	}

	product := UnknownProduct(7)
	if product.ID != 7 || product.Name != "Unknown Product" {
		t.Fatalf("unexpected product placeholder: %+v", product)
	}
	if !product.Price.IsZero() {
		t.Fatalf("placeholder price must be zero, got %s", product.Price)
	}
}

package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func product(name, price string, stock int) domain.CartProduct {
	return domain.CartProduct{Name: name, UnitPrice: decimal.RequireFromString(price), Stock: stock}
}

func TestCart_AddMergesByProductName(t *testing.T) {
	cart := domain.Cart{}

	cart, err := cart.Add(product("Coffee", "4.50", 10), 2)
	if err != nil {
		t.Fatalf("add coffee: %v", err)
	}
	cart, err = cart.Add(product("Tea", "3.00", 10), 1)
	if err != nil {
		t.Fatalf("add tea: %v", err)
	}
	cart, err = cart.Add(product("Coffee", "4.50", 10), 3)
	if err != nil {
		t.Fatalf("add coffee again: %v", err)
	}

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ProductName != "Coffee" || items[0].Quantity != 5 {
		t.Fatalf("expected merged coffee x5 first, got %+v", items[0])
	}
	if items[1].ProductName != "Tea" {
		t.Fatalf("expected tea second, got %+v", items[1])
	}
	if !cart.Total().Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("unexpected total %s", cart.Total())
	}
}

func TestCart_AddRejectsQuantity(t *testing.T) {
	tests := []struct {
		name   string
		qty    int
		stock  int
		reason string
	}{
		{name: "zero", qty: 0, stock: 5, reason: "Quantity must be greater than 0"},
		{name: "above max", qty: 1001, stock: 5000, reason: "Quantity cannot exceed 1000"},
		{name: "above stock", qty: 6, stock: 5, reason: "Only 5 items available in stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := domain.Cart{}.Add(product("Coffee", "1.00", tt.stock), tt.qty)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.reason {
				t.Fatalf("unexpected reason %q", err.Error())
			}
			if !cart.Empty() {
				t.Fatal("rejected add must not change cart")
			}
		})
	}
}

func TestCart_OperationsDoNotMutateOriginal(t *testing.T) {
	original := domain.NewCart(
		domain.CartItem{ProductName: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		domain.CartItem{ProductName: "B", Quantity: 2, UnitPrice: decimal.NewFromInt(2)},
	)

	updated, err := original.Update("A", 9)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	removed := original.Remove("B")
	cleared := original.Clear()

	if original.Items()[0].Quantity != 1 || original.Len() != 2 {
		t.Fatalf("original cart was mutated: %+v", original.Items())
	}
	if updated.Items()[0].Quantity != 9 {
		t.Fatalf("update not applied: %+v", updated.Items())
	}
	if removed.Len() != 1 || removed.Items()[0].ProductName != "A" {
		t.Fatalf("remove not applied: %+v", removed.Items())
	}
	if !cleared.Empty() {
		t.Fatal("clear must return empty cart")
	}
}

func TestCart_UpdateUnknownItem(t *testing.T) {
	_, err := domain.Cart{}.Update("missing", 1)
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCart_RemoveUnknownItemIsNoop(t *testing.T) {
	cart := domain.NewCart(domain.CartItem{ProductName: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	if got := cart.Remove("missing"); got.Len() != 1 {
		t.Fatalf("expected cart unchanged, got %d items", got.Len())
	}
}

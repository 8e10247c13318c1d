package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		raw    string
		reason string
	}{
		{raw: "0"},
		{raw: "19.99"},
		{raw: "999999.99"},
		{raw: " 42 "},
		{raw: "-1", reason: "Amount cannot be negative"},
		{raw: "-0.01", reason: "Amount cannot be negative"},
		{raw: "1000000.00", reason: "Amount exceeds maximum limit"},
		{raw: "999999.991", reason: "Amount exceeds maximum limit"},
		{raw: "10.500"},
		{raw: "10.005", reason: "Amount cannot have more than 2 decimal places"},
		{raw: "0.001", reason: "Amount cannot have more than 2 decimal places"},
		{raw: "abc", reason: "Invalid amount format"},
		{raw: "", reason: "Invalid amount format"},
		{raw: "12,50", reason: "Invalid amount format"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			amount, err := Amount(tt.raw)
			assertVerdict(t, err, tt.reason)
			if tt.reason != "" && !amount.IsZero() {
				t.Fatalf("rejected amount must be zero, got %s", amount)
			}
		})
	}
}

func TestAmount_KeepsPrecision(t *testing.T) {
	amount, err := Amount("10.05")
	if err != nil {
		t.Fatalf("Amount: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("10.05")) {
		t.Fatalf("expected 10.05, got %s", amount)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		reason string
	}{
		{raw: "1", want: 1},
		{raw: "1000", want: 1000},
		{raw: " 7 ", want: 7},
		{raw: "0", reason: "Quantity must be greater than 0"},
		{raw: "-3", reason: "Quantity must be greater than 0"},
		{raw: "1001", reason: "Quantity cannot exceed 1000"},
		{raw: "1.5", reason: "Quantity must be a number"},
		{raw: "ten", reason: "Quantity must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Quantity(tt.raw)
			assertVerdict(t, err, tt.reason)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCheckQuantity_Bounds(t *testing.T) {
	for _, qty := range []int{1, 500, 1000} {
		if err := CheckQuantity(qty); err != nil {
			t.Errorf("CheckQuantity(%d) = %v, want nil", qty, err)
		}
	}
	for _, qty := range []int{0, 1001, -1} {
		if err := CheckQuantity(qty); err == nil {
			t.Errorf("CheckQuantity(%d) must reject", qty)
		}
	}
}

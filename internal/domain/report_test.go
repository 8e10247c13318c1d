package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func TestCustomerCode(t *testing.T) {
	tests := map[int64]string{
		1:    "cust-001",
		42:   "cust-042",
		999:  "cust-999",
		1234: "cust-1234",
	}
	for id, want := range tests {
		if got := domain.CustomerCode(id); got != want {
			t.Errorf("CustomerCode(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestDay_TruncatesInUTC(t *testing.T) {
	phnomPenh := time.FixedZone("ICT", 7*3600)
	at := time.Date(2025, 5, 2, 3, 15, 0, 0, phnomPenh)

	got := domain.Day(at)
	want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestAverageOrderValue(t *testing.T) {
	if got := domain.AverageOrderValue(decimal.Zero, 0); !got.IsZero() {
		t.Fatalf("empty store must give 0, got %s", got)
	}

	got := domain.AverageOrderValue(decimal.RequireFromString("100.00"), 3)
	if !got.Equal(decimal.RequireFromString("33.33")) {
		t.Fatalf("expected 33.33, got %s", got)
	}
}

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// Amount разбирает денежную сумму и проверяет диапазон [0, 999999.99] с точностью до цента.
// Неразбираемая строка сама по себе означает отказ.
func Amount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domain.NewValidationError("amount", "Invalid amount format")
	}
	if err := CheckAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// CheckAmount проверяет диапазон и число знаков после запятой уже разобранной суммы.
// Незначащие нули ("10.500") допускаются.
func CheckAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.NewValidationError("amount", "Amount cannot be negative")
	}
	if amount.GreaterThan(domain.MaxAmount) {
		return domain.NewValidationError("amount", "Amount exceeds maximum limit")
	}
	if !amount.Equal(amount.Truncate(domain.AmountScale)) {
		return domain.NewValidationError("amount", fmt.Sprintf("Amount cannot have more than %d decimal places", domain.AmountScale))
	}
	return nil
}

// Quantity разбирает целое количество и проверяет диапазон [1, 1000].
func Quantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.NewValidationError("quantity", "Quantity must be a number")
	}
	if err := CheckQuantity(qty); err != nil {
		return 0, err
	}
	return qty, nil
}

// CheckQuantity проверяет диапазон количества.
func CheckQuantity(qty int) error {
	if qty < domain.MinItemQuantity {
		return domain.NewValidationError("quantity", "Quantity must be greater than 0")
	}
	if qty > domain.MaxItemQuantity {
		return domain.NewValidationError("quantity", fmt.Sprintf("Quantity cannot exceed %d", domain.MaxItemQuantity))
	}
	return nil
}

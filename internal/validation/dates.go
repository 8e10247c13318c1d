package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// Форматы ISO-8601, которые принимаются для дат. Значения без зоны считаются UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Час, к которому приводится дата без времени.
const dateOnlyHour = 12

// ShipDate проверяет, что дата отгрузки не раньше даты заказа.
// Отсутствующая дата отгрузки всегда принимается.
func ShipDate(orderDate time.Time, shipDate *time.Time) error {
	if shipDate == nil {
		return nil
	}
	if shipDate.Before(orderDate) {
		return domain.NewValidationError("ship_date", "Ship date cannot be before order date")
	}
	return nil
}

// ShipDateString проверяет даты, пришедшие сырыми строками из формы.
// Пустая строка отгрузки означает отсутствие даты.
func ShipDateString(orderDate, shipDate string) error {
	if strings.TrimSpace(shipDate) == "" {
		return nil
	}

	order, err := ParseDate(orderDate)
	if err != nil {
		return err
	}
	ship, err := ParseDate(shipDate)
	if err != nil {
		return err
	}

	return ShipDate(order, &ship)
}

// ParseDate разбирает дату в одном из поддерживаемых ISO-форматов.
// Дата без времени (YYYY-MM-DD) означает полдень UTC этого дня.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.Add(dateOnlyHour * time.Hour), nil
	}
	return time.Time{}, domain.NewValidationError("date", fmt.Sprintf("Invalid date format: %q", raw))
}

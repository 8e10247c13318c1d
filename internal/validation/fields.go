package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

const (
	minNameLength       = 2
	maxNameLength       = 50
	minPostalCodeLength = 5
	maxPostalCodeLength = 6

	// CountryCode — телефонный код страны для региональных номеров.
	CountryCode = "855"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
	phonePrefix     = `(1[0-9]|6[1-9]|7[0-9]|8[1-9]|9[0-9])\d{6,7}$`
	phonePatterns   = []*regexp.Regexp{
		regexp.MustCompile(`^0` + phonePrefix),
		regexp.MustCompile(`^\+` + CountryCode + phonePrefix),
		regexp.MustCompile(`^` + CountryCode + phonePrefix),
	}
)

// Name проверяет имя или фамилию. field содержит подпись поля для сообщения ("First name").
func Name(field, value string) error {
	trimmed := strings.TrimSpace(value)
	length := utf8.RuneCountInString(trimmed)

	if length < minNameLength {
		return domain.NewValidationError(field, fmt.Sprintf("%s must be at least %d characters", field, minNameLength))
	}
	if length > maxNameLength {
		return domain.NewValidationError(field, fmt.Sprintf("%s cannot exceed %d characters", field, maxNameLength))
	}
	if strings.IndexFunc(trimmed, unicode.IsDigit) >= 0 {
		return domain.NewValidationError(field, fmt.Sprintf("%s cannot contain numbers", field))
	}

	return nil
}

// Email проверяет формат local@domain.tld.
func Email(value string) error {
	if !emailPattern.MatchString(value) {
		return domain.NewValidationError("email", "Invalid email format")
	}
	return nil
}

// Phone проверяет региональный номер после удаления пробелов, дефисов и скобок.
// Допустимы формы 0XX..., +855XX... и 855XX...
func Phone(value string) error {
	cleaned := NormalizePhone(value)
	for _, pattern := range phonePatterns {
		if pattern.MatchString(cleaned) {
			return nil
		}
	}
	return domain.NewValidationError("phone", "Invalid Cambodian phone number. Format: 0XX XXX XXX or +855 XX XXX XXX")
}

// NormalizePhone убирает из номера пробелы, дефисы и скобки. В таком виде номер и хранится.
func NormalizePhone(value string) string {
	return phoneSeparators.ReplaceAllString(value, "")
}

// PostalCode проверяет почтовый индекс: 5-6 цифр после обрезки пробелов.
func PostalCode(value string) error {
	trimmed := strings.TrimSpace(value)

	if len(trimmed) < minPostalCodeLength {
		return domain.NewValidationError("postal_code", fmt.Sprintf("Postal code must be at least %d characters", minPostalCodeLength))
	}
	if len(trimmed) > maxPostalCodeLength {
		return domain.NewValidationError("postal_code", fmt.Sprintf("Postal code cannot exceed %d characters", maxPostalCodeLength))
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return domain.NewValidationError("postal_code", "Postal code must contain only digits")
		}
	}

	return nil
}

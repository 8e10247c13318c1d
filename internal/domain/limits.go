package domain

import "github.com/shopspring/decimal"

// Границы значений, общие для валидатора, корзины и схемы БД.
const (
	MinItemQuantity = 1
	MaxItemQuantity = 1000
)

// AmountScale задаёт число знаков после запятой в денежных колонках.
const AmountScale = 2

// MaxAmount — верхняя граница денежной суммы (NUMERIC(10,2)).
var MaxAmount = decimal.RequireFromString("999999.99")

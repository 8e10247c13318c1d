package domain

import "github.com/shopspring/decimal"

// PaymentMethod — справочник способов оплаты.
type PaymentMethod struct {
	ID   int64
	Name string
}

// Channel — канал продаж (сайт, телефон, магазин).
type Channel struct {
	ID          int64
	Name        string
	Description string
}

// Category — категория товаров.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Product — товар каталога. Остаток только отображается и ограничивает ввод количества.
type Product struct {
	ID            int64
	CategoryID    int64
	Name          string
	Description   string
	UnitPrice     decimal.Decimal
	StockQuantity int
	Active        bool
}

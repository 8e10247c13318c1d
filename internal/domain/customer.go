package domain

import "time"

// Customer — зарегистрированный покупатель.
type Customer struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	CreatedAt  time.Time
}

// NewCustomer содержит уже проверенные поля для вставки.
type NewCustomer struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// CustomerSummary — строка списка покупателей.
type CustomerSummary struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	City      string
}

package memory

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// SeedReferenceData заполняет справочники тем же набором, что и миграция
// 0002_seed_reference_data для PostgreSQL.
func SeedReferenceData(s *Store) {
	for _, name := range []string{"Cash on Delivery", "ABA Pay", "Wing Money", "Credit Card", "Bank Transfer"} {
		s.AddPaymentMethod(name, true)
	}

	s.AddChannel("Website", "Online store orders")
	s.AddChannel("Phone", "Orders taken by phone")
	s.AddChannel("In-Store", "Walk-in purchases")
	s.AddChannel("Social Media", "Facebook and Telegram orders")

	electronics := s.AddCategory("Electronics", "Phones, laptops and accessories", true)
	clothing := s.AddCategory("Clothing", "Apparel and footwear", true)
	home := s.AddCategory("Home & Kitchen", "Household goods", true)
	books := s.AddCategory("Books", "Printed and digital books", true)

	products := []domain.Product{
		{CategoryID: electronics, Name: "Smartphone X1", Description: "6.5\" display, 128GB", UnitPrice: decimal.RequireFromString("299.99"), StockQuantity: 50},
		{CategoryID: electronics, Name: "Laptop Pro 14", Description: "14\" laptop, 16GB RAM", UnitPrice: decimal.RequireFromString("899.00"), StockQuantity: 15},
		{CategoryID: electronics, Name: "Wireless Earbuds", Description: "Bluetooth 5.3", UnitPrice: decimal.RequireFromString("49.50"), StockQuantity: 120},
		{CategoryID: clothing, Name: "Cotton T-Shirt", Description: "Unisex, assorted sizes", UnitPrice: decimal.RequireFromString("8.99"), StockQuantity: 300},
		{CategoryID: clothing, Name: "Running Shoes", Description: "Lightweight trainers", UnitPrice: decimal.RequireFromString("59.00"), StockQuantity: 40},
		{CategoryID: home, Name: "Rice Cooker", Description: "1.8L electric rice cooker", UnitPrice: decimal.RequireFromString("35.00"), StockQuantity: 25},
		{CategoryID: home, Name: "Ceramic Mug", Description: "350ml", UnitPrice: decimal.RequireFromString("4.25"), StockQuantity: 500},
		{CategoryID: books, Name: "Khmer Cookbook", Description: "Traditional recipes", UnitPrice: decimal.RequireFromString("18.00"), StockQuantity: 60},
		{CategoryID: books, Name: "Go in Practice", Description: "Programming guide", UnitPrice: decimal.RequireFromString("42.00"), StockQuantity: 10},
	}
	for _, product := range products {
		product.Active = true
		s.AddProduct(product)
	}
}

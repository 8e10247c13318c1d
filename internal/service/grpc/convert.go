package grpcsvc

import (
	"time"

	"github.com/shopspring/decimal"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timestamp(*t)
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

func toProtoCustomer(c domain.CustomerSummary) *backofficev1.Customer {
	return &backofficev1.Customer{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		City:      c.City,
	}
}

func toProtoOrderSummary(o domain.OrderSummary) *backofficev1.OrderSummary {
	return &backofficev1.OrderSummary{
		ID:                o.ID,
		OrderDate:         timestamp(o.OrderDate),
		ShipDate:          optionalTimestamp(o.ShipDate),
		Status:            string(o.Status),
		TotalAmount:       money(o.TotalAmount),
		CustomerFirstName: o.CustomerFirstName,
		CustomerLastName:  o.CustomerLastName,
		PaymentMethod:     o.PaymentMethod,
		Channel:           o.Channel,
	}
}

func toProtoOrderDetails(o domain.OrderDetails) *backofficev1.OrderDetails {
	items := make([]*backofficev1.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, &backofficev1.OrderItem{
			ProductName: item.ProductName,
			Quantity:    int32(item.Quantity),
			UnitPrice:   money(item.UnitPrice),
			Subtotal:    money(item.Subtotal),
		})
	}
	return &backofficev1.OrderDetails{
		ID:                o.ID,
		OrderDate:         timestamp(o.OrderDate),
		TotalAmount:       money(o.TotalAmount),
		Status:            string(o.Status),
		CustomerFirstName: o.CustomerFirstName,
		CustomerLastName:  o.CustomerLastName,
		CustomerEmail:     o.CustomerEmail,
		PaymentMethod:     o.PaymentMethod,
		Channel:           o.Channel,
		ShipDate:          optionalTimestamp(o.ShipDate),
		ShippingAddress:   o.ShippingAddress,
		Items:             items,
	}
}

func toProtoProduct(p domain.Product) *backofficev1.Product {
	return &backofficev1.Product{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		UnitPrice:     money(p.UnitPrice),
		StockQuantity: int32(p.StockQuantity),
	}
}

func toProtoLatestOrder(r domain.LatestOrderRow) *backofficev1.LatestOrderRow {
	return &backofficev1.LatestOrderRow{
		OrderID:       r.OrderID,
		CustomerCode:  r.CustomerCode,
		OrderDate:     timestamp(r.OrderDate),
		ShipDate:      optionalTimestamp(r.ShipDate),
		Status:        string(r.Status),
		Category:      r.Category,
		Channel:       r.Channel,
		TotalAmount:   money(r.TotalAmount),
		Discount:      money(r.Discount),
		PaymentMethod: r.PaymentMethod,
	}
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCartItemNotFound — в корзине нет позиции с таким названием товара.
var ErrCartItemNotFound = errors.New("item is not in the cart")

// CartProduct — товар, выбранный для добавления в корзину.
type CartProduct struct {
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

// CartItem — позиция корзины до оформления заказа.
type CartItem struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal возвращает quantity × unit price.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart — упорядоченный набор позиций, принадлежащий вызывающей стороне.
// Ключом позиции служит название товара. Все операции возвращают новую корзину
// и не меняют исходную.
type Cart struct {
	items []CartItem
}

// NewCart собирает корзину из готовых позиций, сохраняя порядок.
func NewCart(items ...CartItem) Cart {
	return Cart{items: append([]CartItem(nil), items...)}
}

// Items возвращает копию позиций.
func (c Cart) Items() []CartItem {
	return append([]CartItem(nil), c.items...)
}

// Len возвращает количество позиций.
func (c Cart) Len() int { return len(c.items) }

// Empty сообщает, что корзина пуста.
func (c Cart) Empty() bool { return len(c.items) == 0 }

// Add добавляет товар. Количество ограничено остатком и MaxItemQuantity;
// повторное добавление того же товара суммирует количество.
func (c Cart) Add(product CartProduct, qty int) (Cart, error) {
	if qty < MinItemQuantity {
		return c, NewValidationError("quantity", "Quantity must be greater than 0")
	}
	if qty > MaxItemQuantity {
		return c, NewValidationError("quantity", fmt.Sprintf("Quantity cannot exceed %d", MaxItemQuantity))
	}
	if qty > product.Stock {
		return c, NewValidationError("quantity", fmt.Sprintf("Only %d items available in stock", product.Stock))
	}

	next := c.Items()
	if idx := c.index(product.Name); idx >= 0 {
		// Остаток при слиянии не перепроверяется: итоговое количество
		// проверит создание заказа.
		next[idx].Quantity += qty
		return Cart{items: next}, nil
	}

	next = append(next, CartItem{
		ProductName: product.Name,
		Quantity:    qty,
		UnitPrice:   product.UnitPrice,
	})
	return Cart{items: next}, nil
}

// Update задаёт новое количество для позиции.
func (c Cart) Update(productName string, qty int) (Cart, error) {
	idx := c.index(productName)
	if idx < 0 {
		return c, ErrCartItemNotFound
	}
	if qty < MinItemQuantity {
		return c, NewValidationError("quantity", "Quantity must be greater than 0")
	}
	if qty > MaxItemQuantity {
		return c, NewValidationError("quantity", fmt.Sprintf("Quantity cannot exceed %d", MaxItemQuantity))
	}

	next := c.Items()
	next[idx].Quantity = qty
	return Cart{items: next}, nil
}

// Remove удаляет позицию; отсутствующая позиция не считается ошибкой.
func (c Cart) Remove(productName string) Cart {
	idx := c.index(productName)
	if idx < 0 {
		return c
	}

	next := make([]CartItem, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)
	return Cart{items: next}
}

// Clear возвращает пустую корзину.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Total суммирует подытоги всех позиций.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c Cart) index(productName string) int {
	for i, item := range c.items {
		if item.ProductName == productName {
			return i
		}
	}
	return -1
}

package catalog

import (
	"fmt"

	"github.com/govalues/decimal"
)

// FrozenProduct can't be changed after construction. The With methods return
// modified copies.
type FrozenProduct struct {
	name  string
	price decimal.Decimal
	stock int
}

func NewFrozenProduct(name string, price decimal.Decimal, stock int) FrozenProduct {
	return FrozenProduct{name: name, price: price, stock: stock}
}

func (p FrozenProduct) Name() string           { return p.name }
func (p FrozenProduct) Price() decimal.Decimal { return p.price }
func (p FrozenProduct) Stock() int             { return p.stock }

func (p FrozenProduct) WithPrice(price decimal.Decimal) FrozenProduct {
	p.price = price
	return p
}

func (p FrozenProduct) WithStock(stock int) FrozenProduct {
	p.stock = stock
	return p
}

func (p FrozenProduct) String() string {
	return fmt.Sprintf("FrozenProduct(name=%s, price=%s, stock=%d)", p.name, p.price, p.stock)
}

// Tuple lists the fields in declaration order: name, price, stock.
func (p FrozenProduct) Tuple() []any {
	return []any{p.name, p.price, p.stock}
}

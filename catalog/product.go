// Package catalog models priced products: plain records, products whose price is
// derived at construction, and products composed with a supplier.
package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/govalues/decimal"
)

// Product is a plain priced record.
type Product struct {
	Name      string
	Price     decimal.Decimal
	Stock     int
	Tags      []string
	CreatedAt time.Time
}

// NewProduct returns a product with no stock and its own empty tag list.
func NewProduct(name string, price decimal.Decimal) Product {
	return Product{
		Name:      name,
		Price:     price,
		Tags:      []string{},
		CreatedAt: time.Now(),
	}
}

// Equal reports whether p and o describe the same product. CreatedAt is ignored.
func (p Product) Equal(o Product) bool {
	return p.Name == o.Name &&
		p.Price.Equal(o.Price) &&
		p.Stock == o.Stock &&
		slices.Equal(p.Tags, o.Tags)
}

func (p Product) String() string {
	return fmt.Sprintf("Product(name=%s, price=%s, stock=%d, tags=[%s])",
		p.Name, p.Price, p.Stock, strings.Join(p.Tags, " "))
}

// Map flattens p into field name/value pairs.
func (p Product) Map() map[string]any {
	return map[string]any{
		"name":       p.Name,
		"price":      p.Price.String(),
		"stock":      p.Stock,
		"tags":       slices.Clone(p.Tags),
		"created_at": p.CreatedAt,
	}
}

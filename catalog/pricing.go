package catalog

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var ErrInvalidDiscount = errors.New("discount must be between 0 and 1")

// TaxedProduct carries a total price computed once from its base price and tax rate.
type TaxedProduct struct {
	Name       string
	BasePrice  decimal.Decimal
	TaxRate    decimal.Decimal
	TotalPrice decimal.Decimal
}

func NewTaxedProduct(name string, basePrice, taxRate decimal.Decimal) (TaxedProduct, error) {
	p := TaxedProduct{Name: name, BasePrice: basePrice, TaxRate: taxRate}
	if err := p.computeTotal(); err != nil {
		return TaxedProduct{}, err
	}
	return p, nil
}

func (p *TaxedProduct) computeTotal() error {
	factor, err := decimal.One.Add(p.TaxRate)
	if err != nil {
		return fmt.Errorf("tax rate %s: %w", p.TaxRate, err)
	}
	total, err := p.BasePrice.Mul(factor)
	if err != nil {
		return fmt.Errorf("total price of %s: %w", p.Name, err)
	}
	p.TotalPrice = total
	return nil
}

// DiscountedProduct is a TaxedProduct whose total is reduced by Discount after tax.
type DiscountedProduct struct {
	TaxedProduct
	Discount decimal.Decimal
}

func NewDiscountedProduct(name string, basePrice, taxRate, discount decimal.Decimal) (DiscountedProduct, error) {
	if discount.IsNeg() || discount.Cmp(decimal.One) > 0 {
		return DiscountedProduct{}, fmt.Errorf("%w: got %s", ErrInvalidDiscount, discount)
	}
	p := DiscountedProduct{
		TaxedProduct: TaxedProduct{Name: name, BasePrice: basePrice, TaxRate: taxRate},
		Discount:     discount,
	}
	if err := p.computeTotal(); err != nil {
		return DiscountedProduct{}, err
	}
	off, err := p.TotalPrice.Mul(discount)
	if err != nil {
		return DiscountedProduct{}, err
	}
	if p.TotalPrice, err = p.TotalPrice.Sub(off); err != nil {
		return DiscountedProduct{}, err
	}
	return p, nil
}

// SuppliedProduct pairs a product with the supplier it comes from.
type SuppliedProduct struct {
	Product
	SupplierCode string
}

func (p SuppliedProduct) Info() string {
	return fmt.Sprintf("%s costs %s, supplied by %s", p.Name, p.Price, p.SupplierCode)
}

// String hides the supplier code.
func (p SuppliedProduct) String() string {
	return fmt.Sprintf("SuppliedProduct(name=%s, price=%s)", p.Name, p.Price)
}

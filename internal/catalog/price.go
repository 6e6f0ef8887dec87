// internal/catalog/price.go
package catalog

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrDiscountOutOfRange = errors.New("discount must be between 0 and 100")
	ErrPriceTooLarge      = errors.New("price is too large")

	hundred = decimal.NewFromInt(100)
)

// FinalPrice returns price - price*(discount/100). Create and update paths
// both go through here so stored values never drift.
func FinalPrice(price, discount decimal.Decimal) decimal.Decimal {
	return price.Sub(price.Mul(discount.Div(hundred)))
}

// ValidatePricing checks the ranges FinalPrice is defined for. Prices are
// stored as float64, so anything that does not fit one finitely is rejected.
func ValidatePricing(price, discount decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return ErrDiscountOutOfRange
	}
	if !finite(price) || !finite(FinalPrice(price, discount)) {
		return ErrPriceTooLarge
	}
	return nil
}

func finite(d decimal.Decimal) bool {
	f := d.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

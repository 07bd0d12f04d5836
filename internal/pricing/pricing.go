// Package pricing derives checkout totals from a cart line snapshot. All
// functions are pure: same inputs, same output, no side effects.
package pricing

import "github.com/fadiboulbina/invento-noir-connect/internal/domain"

// Rates maps each shipping method to its flat cost. Values are plain DZD
// amounts with no minor units.
type Rates struct {
	Standard float64
	Express  float64
}

func DefaultRates() Rates {
	return Rates{
		Standard: 500,
		Express:  1000,
	}
}

type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) Calculator {
	return Calculator{rates: rates}
}

func (c Calculator) Subtotal(lines []domain.CartLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}

func (c Calculator) ShippingCost(method domain.ShippingMethod) float64 {
	if method == domain.ShippingExpress {
		return c.rates.Express
	}
	return c.rates.Standard
}

func (c Calculator) Total(lines []domain.CartLine, method domain.ShippingMethod) float64 {
	return c.Subtotal(lines) + c.ShippingCost(method)
}

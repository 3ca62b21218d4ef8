package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingLine pairs a product with the quantity being purchased.
type PricingLine struct {
	Product  Product
	Quantity int32
}

// OrderTotals is the monetary breakdown of an order. All values are
// rounded to two decimal places.
//
//	Total = Subtotal - Discount + Tax + Shipping
type OrderTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// TaxFunc computes the tax owed on a taxable amount. The tax package
// provides implementations.
type TaxFunc func(taxable decimal.Decimal) decimal.Decimal

// PriceOrder computes order totals from catalog prices, active sale events,
// a tax function, and a flat shipping cost. It is a pure function: totals
// depend only on the inputs, never on stored state.
//
// Each line gets the single best discount among events active at now that
// apply to its product. Discounts are subtracted before tax; tax applies to
// the discounted subtotal only, never to shipping.
func PriceOrder(lines []PricingLine, events []SaleEvent, now time.Time, tax TaxFunc, shipping decimal.Decimal) OrderTotals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	hundred := decimal.NewFromInt(100)

	for _, line := range lines {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		best := decimal.Zero
		for _, e := range events {
			if !e.ActiveAt(now) || !e.AppliesTo(line.Product) {
				continue
			}
			if e.PercentOff.GreaterThan(best) {
				best = e.PercentOff
			}
		}
		if best.IsPositive() {
			discount = discount.Add(lineTotal.Mul(best).Div(hundred))
		}
	}

	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	taxed := tax(subtotal.Sub(discount)).Round(2)
	shipping = shipping.Round(2)
	total := subtotal.Sub(discount).Add(taxed).Add(shipping)

	return OrderTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      taxed,
		Shipping: shipping,
		Total:    total,
	}
}

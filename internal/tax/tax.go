package tax

import (
	"github.com/shopspring/decimal"
)

// Calculator computes the tax owed on a taxable amount.
// Implementations: PercentageCalculator, NoTaxCalculator
type Calculator interface {
	// Tax returns the tax on the given amount, rounded to two decimal
	// places. The taxable amount is the discounted merchandise subtotal;
	// shipping is never taxed.
	Tax(taxable decimal.Decimal) decimal.Decimal
}

package tax

import (
	"github.com/shopspring/decimal"
)

// PercentageCalculator calculates tax using a simple percentage rate.
type PercentageCalculator struct {
	rate decimal.Decimal // e.g. 0.08 for 8%
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
func NewPercentageCalculator(rate decimal.Decimal) *PercentageCalculator {
	return &PercentageCalculator{rate: rate}
}

// Tax computes taxable * rate rounded to two decimal places.
func (c *PercentageCalculator) Tax(taxable decimal.Decimal) decimal.Decimal {
	return taxable.Mul(c.rate).Round(2)
}

package tax

import "github.com/shopspring/decimal"

// NoTaxCalculator returns zero tax for all calculations.
// Used for tax-exempt jurisdictions.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a new no-tax calculator.
func NewNoTaxCalculator() *NoTaxCalculator {
	return &NoTaxCalculator{}
}

// Tax always returns zero.
func (c *NoTaxCalculator) Tax(taxable decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

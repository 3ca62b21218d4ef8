package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jswan/mercantile/internal/tax"
)

func TestNoTaxCalculator(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	var _ tax.Calculator = calc

	for _, taxable := range []string{"0", "10.00", "99999.99"} {
		got := calc.Tax(dec(taxable))
		assert.True(t, got.Equal(decimal.Zero), "Tax(%s) = %s, want 0", taxable, got)
	}
}

package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jswan/mercantile/internal/tax"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPercentageCalculator(t *testing.T) {
	tests := []struct {
		name    string
		rate    string
		taxable string
		want    string
	}{
		{
			name: "eight percent", rate: "0.08",
			taxable: "100.00", want: "8.00",
		},
		{
			name: "zero rate", rate: "0",
			taxable: "100.00", want: "0.00",
		},
		{
			name: "zero taxable", rate: "0.08",
			taxable: "0", want: "0.00",
		},
		{
			name: "rounds half up", rate: "0.075",
			taxable: "25.00", want: "1.88",
		},
		{
			name: "rounds down below midpoint", rate: "0.08",
			taxable: "10.40", want: "0.83",
		},
		{
			name: "fractional rate", rate: "0.0825",
			taxable: "47.23", want: "3.90",
		},
		{
			name: "full rate edge case", rate: "1",
			taxable: "50.00", want: "50.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(dec(tt.rate))
			got := calc.Tax(dec(tt.taxable))
			assert.True(t, got.Equal(dec(tt.want)), "Tax(%s) = %s, want %s", tt.taxable, got, tt.want)
		})
	}
}

func TestPercentageCalculatorIdempotent(t *testing.T) {
	calc := tax.NewPercentageCalculator(dec("0.08"))
	taxable := dec("87.50")

	first := calc.Tax(taxable)
	second := calc.Tax(taxable)
	assert.True(t, first.Equal(second))
}

package pricing

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Round2 rounds a monetary amount to cents, half away from zero.
// Only sale-price boundaries round; intermediate sums stay exact.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Percent returns p/100 as a multiplier.
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// Average returns the arithmetic mean of values, or zero for an empty slice.
func Average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

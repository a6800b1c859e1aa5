package pricing

import "github.com/shopspring/decimal"

// MarginIndicator is a three-level classification of profit percentage.
type MarginIndicator string

const (
	IndicatorHealthy      MarginIndicator = "healthy"
	IndicatorCaution      MarginIndicator = "caution"
	IndicatorUnprofitable MarginIndicator = "unprofitable"
)

var (
	healthyThreshold = decimal.NewFromInt(30)
	cautionThreshold = decimal.NewFromInt(15)
)

// CostBreakdown is the cost vector shared by every service type.
// LaborCost is null when the shop has no labor rate configured.
type CostBreakdown struct {
	GarmentCost  decimal.Decimal     `json:"garmentCost"`
	InkCost      decimal.Decimal     `json:"inkCost"`
	OverheadCost decimal.Decimal     `json:"overheadCost"`
	LaborCost    decimal.NullDecimal `json:"laborCost"`
}

// MarginBreakdown contains revenue, every cost line and the resulting profit.
type MarginBreakdown struct {
	Revenue      decimal.Decimal     `json:"revenue"`
	GarmentCost  decimal.Decimal     `json:"garmentCost"`
	InkCost      decimal.Decimal     `json:"inkCost"`
	OverheadCost decimal.Decimal     `json:"overheadCost"`
	LaborCost    decimal.NullDecimal `json:"laborCost"`
	TotalCost    decimal.Decimal     `json:"totalCost"`
	Profit       decimal.Decimal     `json:"profit"`
	Percentage   decimal.Decimal     `json:"percentage"`
	Indicator    MarginIndicator     `json:"indicator"`
}

// CalculateMargin computes profit and margin percentage for revenue against costs.
// A loss is a valid result; percentage is zero when there is no revenue.
func CalculateMargin(revenue decimal.Decimal, costs CostBreakdown) MarginBreakdown {
	totalCost := costs.GarmentCost.Add(costs.InkCost).Add(costs.OverheadCost)
	if costs.LaborCost.Valid {
		totalCost = totalCost.Add(costs.LaborCost.Decimal)
	}

	profit := revenue.Sub(totalCost)
	percentage := decimal.Zero
	if revenue.IsPositive() {
		percentage = profit.Div(revenue).Mul(hundred)
	}

	return MarginBreakdown{
		Revenue:      revenue,
		GarmentCost:  costs.GarmentCost,
		InkCost:      costs.InkCost,
		OverheadCost: costs.OverheadCost,
		LaborCost:    costs.LaborCost,
		TotalCost:    totalCost,
		Profit:       profit,
		Percentage:   percentage,
		Indicator:    GetMarginIndicator(percentage),
	}
}

// GetMarginIndicator classifies a margin percentage: >=30 healthy, >=15 caution.
func GetMarginIndicator(percentage decimal.Decimal) MarginIndicator {
	switch {
	case percentage.GreaterThanOrEqual(healthyThreshold):
		return IndicatorHealthy
	case percentage.GreaterThanOrEqual(cautionThreshold):
		return IndicatorCaution
	default:
		return IndicatorUnprofitable
	}
}

// rank orders indicators from worst to best.
func (m MarginIndicator) rank() int {
	switch m {
	case IndicatorHealthy:
		return 2
	case IndicatorCaution:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether m is the same as or better than other.
func (m MarginIndicator) AtLeast(other MarginIndicator) bool {
	return m.rank() >= other.rank()
}

// Costs returns the cost vector a margin was computed from.
func (m MarginBreakdown) Costs() CostBreakdown {
	return CostBreakdown{
		GarmentCost:  m.GarmentCost,
		InkCost:      m.InkCost,
		OverheadCost: m.OverheadCost,
		LaborCost:    m.LaborCost,
	}
}

// Add sums two cost vectors. Labor is present when either side has it.
func (c CostBreakdown) Add(o CostBreakdown) CostBreakdown {
	sum := CostBreakdown{
		GarmentCost:  c.GarmentCost.Add(o.GarmentCost),
		InkCost:      c.InkCost.Add(o.InkCost),
		OverheadCost: c.OverheadCost.Add(o.OverheadCost),
	}
	if c.LaborCost.Valid || o.LaborCost.Valid {
		sum.LaborCost = decimal.NewNullDecimal(c.LaborCost.Decimal.Add(o.LaborCost.Decimal))
	}
	return sum
}

// Scale multiplies every cost line by n, e.g. a per-piece vector by quantity.
func (c CostBreakdown) Scale(n decimal.Decimal) CostBreakdown {
	scaled := CostBreakdown{
		GarmentCost:  c.GarmentCost.Mul(n),
		InkCost:      c.InkCost.Mul(n),
		OverheadCost: c.OverheadCost.Mul(n),
	}
	if c.LaborCost.Valid {
		scaled.LaborCost = decimal.NewNullDecimal(c.LaborCost.Decimal.Mul(n))
	}
	return scaled
}

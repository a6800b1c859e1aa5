package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindQuantityTierIndex_MatchesScenario(t *testing.T) {
	tpl := testTemplate()

	idx := FindQuantityTierIndex(tpl.Matrix.QuantityTiers, 50)

	assert.Equal(t, 1, idx)
	decEqual(t, "basePrice", GetBasePriceForTier(tpl.Matrix, idx), "8")
}

func TestFindQuantityTierIndex_OutOfRangeAndGaps(t *testing.T) {
	assert.Equal(t, -1, FindQuantityTierIndex(standardTiers(), 0))
	assert.Equal(t, -1, FindQuantityTierIndex(nil, 10))

	gapped := []QuantityTier{
		{MinQty: 1, MaxQty: intPtr(10), Label: "1-10"},
		{MinQty: 20, MaxQty: nil, Label: "20+"},
	}
	assert.Equal(t, -1, FindQuantityTierIndex(gapped, 15))
	assert.Equal(t, 1, FindQuantityTierIndex(gapped, 500))
}

func TestFindQuantityTierIndex_UniqueMatch(t *testing.T) {
	tiers := standardTiers()
	for qty := 1; qty <= 500; qty++ {
		matches := 0
		for _, tier := range tiers {
			if tier.Contains(qty) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "qty %d", qty)
		idx := FindQuantityTierIndex(tiers, qty)
		require.True(t, tiers[idx].Contains(qty), "qty %d", qty)
	}
}

func TestGetBasePriceForTier_MissingIndex(t *testing.T) {
	m := testTemplate().Matrix

	decEqual(t, "negative index", GetBasePriceForTier(m, -1), "0")
	decEqual(t, "past end", GetBasePriceForTier(m, 3), "0")
}

func TestGetColorUpcharge(t *testing.T) {
	m := testTemplate().Matrix

	decEqual(t, "exact 1", GetColorUpcharge(m, 1), "0.5")
	decEqual(t, "exact 4", GetColorUpcharge(m, 4), "1.2")
	decEqual(t, "extrapolated 6", GetColorUpcharge(m, 6), "1.8")
	decEqual(t, "extrapolated 2", GetColorUpcharge(m, 2), "0.6")
	decEqual(t, "zero colors", GetColorUpcharge(m, 0), "0")

	m.ColorFallback = ColorFallbackNone
	decEqual(t, "no fallback", GetColorUpcharge(m, 6), "0")
	decEqual(t, "no fallback exact", GetColorUpcharge(m, 4), "1.2")

	m.ColorPricing = nil
	decEqual(t, "empty", GetColorUpcharge(m, 3), "0")
}

func TestGetLocationUpcharge(t *testing.T) {
	entries := testTemplate().Matrix.LocationUpcharges

	decEqual(t, "back+sleeve", GetLocationUpcharge(entries, []string{"back", "sleeve"}), "0.65")
	decEqual(t, "unknown", GetLocationUpcharge(entries, []string{"pocket"}), "0")
	decEqual(t, "none", GetLocationUpcharge(entries, nil), "0")
}

func TestGetGarmentMultiplier(t *testing.T) {
	entries := testTemplate().Matrix.GarmentTypePricing

	decEqual(t, "hoodie", GetGarmentMultiplier(entries, "hoodie"), "1.1")
	decEqual(t, "tee", GetGarmentMultiplier(entries, "tee"), "1")
}

func TestCalculatePrice_ScenarioTenEighteen(t *testing.T) {
	tpl := testTemplate()
	tpl.Matrix.QuantityTiers = []QuantityTier{
		{MinQty: 1, MaxQty: intPtr(99), Label: "1-99"},
		{MinQty: 100, MaxQty: nil, Label: "100+"},
	}
	tpl.Matrix.BasePriceByTier = []decimal.Decimal{d("9.50"), d("8.00")}
	tpl.Matrix.ColorPricing = []ColorPricing{{Colors: 2, RatePerHit: d("0.50")}}
	tpl.CostConfig.LaborRate = decimal.NewNullDecimal(d("24"))

	quote := CalculatePrice(ScreenPrintRequest{
		Quantity:           100,
		ColorCount:         2,
		Locations:          []string{"back"},
		GarmentCategory:    "hoodie",
		CatalogGarmentCost: d("2.75"),
	}, tpl)

	assert.Equal(t, 1, quote.TierIndex)
	assert.Equal(t, "100+", quote.TierLabel)
	assert.False(t, quote.PricingGap)
	decEqual(t, "pricePerPiece", quote.PricePerPiece, "10.18")
	decEqual(t, "garmentCost", quote.Margin.GarmentCost, "2.75")
	decEqual(t, "inkCost", quote.Margin.InkCost, "0.2")
	decEqual(t, "overheadCost", quote.Margin.OverheadCost, "1.018")
	require.True(t, quote.Margin.LaborCost.Valid)
	decEqual(t, "laborCost", quote.Margin.LaborCost.Decimal, "0.2")
	decEqual(t, "totalCost", quote.Margin.TotalCost, "4.168")
	decEqual(t, "profit", quote.Margin.Profit, "6.012")
	assert.Equal(t, IndicatorHealthy, quote.Margin.Indicator)
}

func TestCalculatePrice_InkScalesWithLocations(t *testing.T) {
	quote := CalculatePrice(ScreenPrintRequest{
		Quantity:   50,
		ColorCount: 4,
		Locations:  []string{"front", "back"},
	}, testTemplate())

	decEqual(t, "inkCost", quote.Margin.InkCost, "0.8")
	decEqual(t, "pricePerPiece", quote.PricePerPiece, "9.45")
}

func TestCalculatePrice_ManualGarmentCostIgnoresCatalog(t *testing.T) {
	tpl := testTemplate()
	source, err := ManualGarmentCost(d("4.00"))
	require.NoError(t, err)
	tpl.CostConfig.GarmentCostSource = source

	quote := CalculatePrice(ScreenPrintRequest{Quantity: 30, ColorCount: 1, CatalogGarmentCost: d("2.75")}, tpl)

	decEqual(t, "garmentCost", quote.Margin.GarmentCost, "4")
}

func TestCalculatePrice_PricingGapDegradesToZeroBase(t *testing.T) {
	quote := CalculatePrice(ScreenPrintRequest{Quantity: 0, ColorCount: 1}, testTemplate())

	assert.True(t, quote.PricingGap)
	assert.Equal(t, -1, quote.TierIndex)
	assert.Empty(t, quote.TierLabel)
	decEqual(t, "basePrice", quote.BasePrice, "0")
	decEqual(t, "pricePerPiece", quote.PricePerPiece, "0.5")
}

func TestCalculateSetupFees(t *testing.T) {
	m := testTemplate().Matrix

	decEqual(t, "standard", CalculateSetupFees(m, 3, 50, false), "75")
	decEqual(t, "reorder", CalculateSetupFees(m, 3, 50, true), "37.5")
	decEqual(t, "at threshold", CalculateSetupFees(m, 3, 144, false), "0")

	m.SetupConfig.ReorderDiscountPercent = d("33.333")
	decEqual(t, "rounded reorder", CalculateSetupFees(m, 1, 10, true), "16.67")
}

func TestCalculateSetupFees_WaivedRegardlessOfScreens(t *testing.T) {
	m := testTemplate().Matrix
	for screens := 0; screens <= 20; screens++ {
		for _, qty := range []int{144, 145, 1000} {
			decEqual(t, "waived", CalculateSetupFees(m, screens, qty, false), "0")
		}
	}
}

func TestCalculateSetupFees_ZeroThresholdNeverWaives(t *testing.T) {
	m := testTemplate().Matrix
	m.SetupConfig.BulkWaiverThreshold = 0

	decEqual(t, "no waiver", CalculateSetupFees(m, 2, 10000, false), "50")
}

func TestCalculateSetupFeesForGarment_UsesOverride(t *testing.T) {
	m := testTemplate().Matrix
	m.GarmentTypePricing = append(m.GarmentTypePricing, GarmentTypePricing{
		GarmentCategory:  "tote",
		BaseMarkup:       d("0"),
		SetupFeeOverride: decimal.NewNullDecimal(d("15")),
	})

	decEqual(t, "tote", CalculateSetupFeesForGarment(m, "tote", 2, 10, false), "30")
	decEqual(t, "hoodie", CalculateSetupFeesForGarment(m, "hoodie", 2, 10, false), "50")
}

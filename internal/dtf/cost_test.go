package dtf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/printshop/internal/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func testCostConfig() CostConfig {
	return CostConfig{
		FilmCostPerSqFt:          d("0.50"),
		InkCostPerSqIn:           d("0.002"),
		PowderCostPerSqFt:        d("0.10"),
		LaborRatePerHour:         d("18"),
		EquipmentOverheadPerSqFt: d("0.20"),
	}
}

func testTemplate() Template {
	return Template{
		ID:   "dtf-standard",
		Name: "DTF Standard",
		SheetTiers: []SheetTier{
			{Width: 22, Length: 24, RetailPrice: d("14.99")},
			{Width: 22, Length: 48, RetailPrice: d("24.99"), ContractPrice: decimal.NewNullDecimal(d("19.99"))},
			{Width: 22, Length: 120, RetailPrice: d("54.99")},
		},
		RushFees: []RushFee{
			{Turnaround: RushStandard, PercentageUpcharge: d("0")},
			{Turnaround: RushNextDay, PercentageUpcharge: d("25"), FlatFee: decimal.NewNullDecimal(d("5"))},
		},
		FilmTypes: []FilmTypeMultiplier{
			{Type: FilmStandard, Multiplier: d("1.0")},
			{Type: FilmMetallic, Multiplier: d("1.5")},
		},
		CustomerTierDiscounts: []CustomerTierDiscount{
			{Tier: CustomerStandard, DiscountPercent: d("0")},
			{Tier: CustomerPreferred, DiscountPercent: d("10")},
		},
		CostConfig: testCostConfig(),
	}
}

func TestCalculateProductionCost(t *testing.T) {
	cost := CalculateProductionCost(22, 48, testCostConfig())

	decEqual(t, "filmCost", cost.FilmCost, "3.67")
	decEqual(t, "inkCost", cost.InkCost, "2.11")
	decEqual(t, "powderCost", cost.PowderCost, "0.73")
	decEqual(t, "laborCost", cost.LaborCost, "4.4")
	decEqual(t, "equipmentCost", cost.EquipmentCost, "1.47")

	total, _ := cost.TotalCost.Float64()
	assert.InDelta(t, 12.3786666667, total, 1e-9)
	sqFt, _ := cost.SqFt.Float64()
	assert.InDelta(t, 7.3333333333, sqFt, 1e-9)
}

func TestCalculateProductionCost_ZeroRates(t *testing.T) {
	cost := CalculateProductionCost(22, 48, CostConfig{})

	decEqual(t, "total", cost.TotalCost, "0")
}

func TestCalculatePrice_StandardScenario(t *testing.T) {
	result := CalculatePrice(48, CustomerStandard, RushStandard, FilmStandard, testTemplate())

	assert.False(t, result.Unpriced)
	decEqual(t, "price", result.Price, "24.99")
	assert.Equal(t, 48.0, result.Tier.Length)
}

func TestCalculatePrice_ContractPrice(t *testing.T) {
	tpl := testTemplate()

	decEqual(t, "contract with price", CalculatePrice(48, CustomerContract, RushStandard, FilmStandard, tpl).Price, "19.99")
	decEqual(t, "contract without price", CalculatePrice(24, CustomerContract, RushStandard, FilmStandard, tpl).Price, "14.99")
	decEqual(t, "standard ignores contract", CalculatePrice(48, CustomerStandard, RushStandard, FilmStandard, tpl).Price, "24.99")
}

func TestCalculatePrice_ModifierOrder(t *testing.T) {
	result := CalculatePrice(48, CustomerPreferred, RushNextDay, FilmMetallic, testTemplate())

	// ((24.99 * 0.9) * 1.25 + 5) * 1.5 = 49.670625
	decEqual(t, "price", result.Price, "49.67")
	decEqual(t, "basePrice", result.BasePrice, "24.99")
}

func TestCalculatePrice_UnknownModifiersAreNeutral(t *testing.T) {
	result := CalculatePrice(24, CustomerWholesale, RushSameDay, FilmGlow, testTemplate())

	decEqual(t, "price", result.Price, "14.99")
}

func TestCalculatePrice_UnpricedLength(t *testing.T) {
	result := CalculatePrice(30, CustomerStandard, RushStandard, FilmStandard, testTemplate())

	assert.True(t, result.Unpriced)
	decEqual(t, "price", result.Price, "0")
	decEqual(t, "totalCost", result.Margin.TotalCost, "0")
	decEqual(t, "percentage", result.Margin.Percentage, "0")
}

func TestCalculatePrice_MarginMapping(t *testing.T) {
	result := CalculatePrice(48, CustomerStandard, RushStandard, FilmStandard, testTemplate())

	decEqual(t, "garmentCost", result.Margin.GarmentCost, "0")
	decEqual(t, "inkCost", result.Margin.InkCost, "2.11")
	decEqual(t, "overheadCost", result.Margin.OverheadCost, "5.87")
	require.True(t, result.Margin.LaborCost.Valid)
	decEqual(t, "laborCost", result.Margin.LaborCost.Decimal, "4.4")
	decEqual(t, "profit", result.Margin.Profit, "12.61")
	assert.Equal(t, pricing.IndicatorHealthy, result.Margin.Indicator)
}

func TestCalculateTemplateHealth(t *testing.T) {
	health := CalculateTemplateHealth(testTemplate())

	assert.Equal(t, pricing.IndicatorHealthy, health.Indicator)
	assert.Equal(t, 3, health.CellCount)

	expensive := testTemplate()
	expensive.CostConfig.LaborRatePerHour = d("200")
	assert.Equal(t, pricing.IndicatorUnprofitable, CalculateTemplateHealth(expensive).Indicator)
}

func TestCalculateTemplateHealth_NoTiersIsCaution(t *testing.T) {
	tpl := testTemplate()
	tpl.SheetTiers = nil

	assert.Equal(t, pricing.IndicatorCaution, CalculateTemplateHealth(tpl).Indicator)
}

func TestTemplateValidate(t *testing.T) {
	require.NoError(t, testTemplate().Validate())

	mixed := testTemplate()
	mixed.SheetTiers = append(mixed.SheetTiers, SheetTier{Width: 24, Length: 60, RetailPrice: d("30")})
	assert.ErrorIs(t, mixed.Validate(), ErrMixedRollWidth)

	dup := testTemplate()
	dup.SheetTiers = append(dup.SheetTiers, SheetTier{Width: 22, Length: 48, RetailPrice: d("30")})
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateLength)

	film := testTemplate()
	film.FilmTypes = append(film.FilmTypes, FilmTypeMultiplier{Type: FilmGlow, Multiplier: d("0")})
	assert.ErrorIs(t, film.Validate(), ErrFilmMultiplier)

	noID := testTemplate()
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), ErrMissingTemplateID)
}

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int {
	return &v
}

func decEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func standardTiers() []QuantityTier {
	return []QuantityTier{
		{MinQty: 1, MaxQty: intPtr(23), Label: "1-23"},
		{MinQty: 24, MaxQty: intPtr(71), Label: "24-71"},
		{MinQty: 72, MaxQty: nil, Label: "72+"},
	}
}

func testTemplate() Template {
	return Template{
		ID:          "tpl-standard",
		Name:        "Standard",
		PricingTier: "standard",
		Matrix: ScreenPrintMatrix{
			QuantityTiers:   standardTiers(),
			BasePriceByTier: []decimal.Decimal{d("10"), d("8"), d("6")},
			ColorPricing: []ColorPricing{
				{Colors: 1, RatePerHit: d("0.50")},
				{Colors: 4, RatePerHit: d("0.30")},
			},
			LocationUpcharges: []LocationUpcharge{
				{Location: "back", Upcharge: d("0.25")},
				{Location: "sleeve", Upcharge: d("0.40")},
			},
			GarmentTypePricing: []GarmentTypePricing{
				{GarmentCategory: "hoodie", BaseMarkup: d("10")},
			},
			SetupConfig: SetupFeeConfig{
				PerScreenFee:           d("25"),
				BulkWaiverThreshold:    144,
				ReorderDiscountPercent: d("50"),
			},
		},
		CostConfig: CostConfig{
			GarmentCostSource: CatalogGarmentCost(),
			InkCostPerHit:     d("0.10"),
			ShopOverheadRate:  d("10"),
		},
	}
}

package pricing

import "github.com/shopspring/decimal"

// laborSecondsPerPiece is the fixed press time assumed for one piece.
const laborSecondsPerPiece = 30

// ScreenPrintRequest describes one screen-print line to price.
// CatalogGarmentCost is the catalog base price resolved by the caller; it
// is used only when the template's garment cost source is the catalog.
type ScreenPrintRequest struct {
	Quantity           int             `json:"quantity"`
	ColorCount         int             `json:"colorCount"`
	Locations          []string        `json:"locations"`
	GarmentCategory    string          `json:"garmentCategory"`
	CatalogGarmentCost decimal.Decimal `json:"catalogGarmentCost"`
}

// ScreenPrintQuote is the per-piece price of a screen-print line and its margin.
type ScreenPrintQuote struct {
	TierIndex         int             `json:"tierIndex"`
	TierLabel         string          `json:"tierLabel"`
	PricingGap        bool            `json:"pricingGap"`
	BasePrice         decimal.Decimal `json:"basePrice"`
	ColorUpcharge     decimal.Decimal `json:"colorUpcharge"`
	LocationUpcharge  decimal.Decimal `json:"locationUpcharge"`
	GarmentMultiplier decimal.Decimal `json:"garmentMultiplier"`
	PricePerPiece     decimal.Decimal `json:"pricePerPiece"`
	Margin            MarginBreakdown `json:"margin"`
}

// FindQuantityTierIndex returns the index of the first tier containing qty, or -1.
func FindQuantityTierIndex(tiers []QuantityTier, qty int) int {
	for i, tier := range tiers {
		if tier.Contains(qty) {
			return i
		}
	}
	return -1
}

// GetBasePriceForTier returns the base price of a tier, or zero when the
// index has no configured price.
func GetBasePriceForTier(m ScreenPrintMatrix, tierIndex int) decimal.Decimal {
	if tierIndex < 0 || tierIndex >= len(m.BasePriceByTier) {
		return decimal.Zero
	}
	return m.BasePriceByTier[tierIndex]
}

// GetColorUpcharge returns the per-piece color upcharge for colors.
// Counts without their own entry are extrapolated according to the
// matrix ColorFallback policy.
func GetColorUpcharge(m ScreenPrintMatrix, colors int) decimal.Decimal {
	if len(m.ColorPricing) == 0 || colors <= 0 {
		return decimal.Zero
	}

	count := decimal.NewFromInt(int64(colors))
	for _, entry := range m.ColorPricing {
		if entry.Colors == colors {
			return entry.RatePerHit.Mul(count)
		}
	}

	if m.ColorFallback == ColorFallbackNone {
		return decimal.Zero
	}

	highest := m.ColorPricing[0]
	for _, entry := range m.ColorPricing[1:] {
		if entry.Colors > highest.Colors {
			highest = entry
		}
	}
	return highest.RatePerHit.Mul(count)
}

// GetLocationUpcharge sums the flat upcharges of the requested locations.
func GetLocationUpcharge(entries []LocationUpcharge, locations []string) decimal.Decimal {
	total := decimal.Zero
	for _, location := range locations {
		for _, entry := range entries {
			if entry.Location == location {
				total = total.Add(entry.Upcharge)
				break
			}
		}
	}
	return total
}

// GetGarmentMultiplier returns 1 + markup/100 for the category, or 1.
func GetGarmentMultiplier(entries []GarmentTypePricing, category string) decimal.Decimal {
	for _, entry := range entries {
		if entry.GarmentCategory == category {
			return one.Add(Percent(entry.BaseMarkup))
		}
	}
	return one
}

// BuildCostBreakdown derives the screen-print cost vector for one piece sold at price.
func BuildCostBreakdown(price decimal.Decimal, colorCount, locationCount int, cfg CostConfig, garmentCost decimal.Decimal) CostBreakdown {
	if locationCount < 1 {
		locationCount = 1
	}

	costs := CostBreakdown{
		GarmentCost:  garmentCost,
		InkCost:      cfg.InkCostPerHit.Mul(decimal.NewFromInt(int64(colorCount * locationCount))),
		OverheadCost: price.Mul(Percent(cfg.ShopOverheadRate)),
	}
	if cfg.LaborRate.Valid {
		labor := cfg.LaborRate.Decimal.Mul(decimal.NewFromInt(laborSecondsPerPiece)).Div(decimal.NewFromInt(3600))
		costs.LaborCost = decimal.NewNullDecimal(labor)
	}
	return costs
}

// CalculatePrice resolves the per-piece price of a screen-print line.
// A quantity outside every tier is not an error: the base price degrades
// to zero and PricingGap is set so the caller can flag it.
func CalculatePrice(req ScreenPrintRequest, t Template) ScreenPrintQuote {
	m := t.Matrix
	tierIndex := FindQuantityTierIndex(m.QuantityTiers, req.Quantity)

	quote := ScreenPrintQuote{
		TierIndex:         tierIndex,
		PricingGap:        tierIndex < 0,
		BasePrice:         GetBasePriceForTier(m, tierIndex),
		ColorUpcharge:     GetColorUpcharge(m, req.ColorCount),
		LocationUpcharge:  GetLocationUpcharge(m.LocationUpcharges, req.Locations),
		GarmentMultiplier: GetGarmentMultiplier(m.GarmentTypePricing, req.GarmentCategory),
	}
	if tierIndex >= 0 {
		quote.TierLabel = m.QuantityTiers[tierIndex].Label
	}

	quote.PricePerPiece = Round2(
		quote.BasePrice.Add(quote.ColorUpcharge).Add(quote.LocationUpcharge).Mul(quote.GarmentMultiplier),
	)

	garmentCost := t.CostConfig.GarmentCostSource.Resolve(req.CatalogGarmentCost)
	costs := BuildCostBreakdown(quote.PricePerPiece, req.ColorCount, len(req.Locations), t.CostConfig, garmentCost)
	quote.Margin = CalculateMargin(quote.PricePerPiece, costs)

	return quote
}

// PerScreenFee returns the per-screen setup fee for a garment category.
// A category SetupFeeOverride replaces the matrix fee.
func PerScreenFee(m ScreenPrintMatrix, category string) decimal.Decimal {
	for _, entry := range m.GarmentTypePricing {
		if entry.GarmentCategory == category && entry.SetupFeeOverride.Valid {
			return entry.SetupFeeOverride.Decimal
		}
	}
	return m.SetupConfig.PerScreenFee
}

// CalculateSetupFees returns the one-time screen fee for an order.
// The fee is waived when quantity reaches a configured bulk threshold and
// discounted on reorders.
func CalculateSetupFees(m ScreenPrintMatrix, totalScreens, quantity int, isReorder bool) decimal.Decimal {
	return setupFees(m.SetupConfig, m.SetupConfig.PerScreenFee, totalScreens, quantity, isReorder)
}

// CalculateSetupFeesForGarment is CalculateSetupFees with the category's
// per-screen fee override applied.
func CalculateSetupFeesForGarment(m ScreenPrintMatrix, category string, totalScreens, quantity int, isReorder bool) decimal.Decimal {
	return setupFees(m.SetupConfig, PerScreenFee(m, category), totalScreens, quantity, isReorder)
}

func setupFees(cfg SetupFeeConfig, perScreen decimal.Decimal, totalScreens, quantity int, isReorder bool) decimal.Decimal {
	if cfg.BulkWaiverThreshold > 0 && quantity >= cfg.BulkWaiverThreshold {
		return decimal.Zero
	}

	fee := perScreen.Mul(decimal.NewFromInt(int64(totalScreens)))
	if isReorder {
		fee = fee.Mul(one.Sub(Percent(cfg.ReorderDiscountPercent)))
	}
	return Round2(fee)
}

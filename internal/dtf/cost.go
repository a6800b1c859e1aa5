package dtf

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/printshop/internal/pricing"
)

var (
	sqInPerSqFt    = decimal.NewFromInt(144)
	minutesPerHour = decimal.NewFromInt(60)

	// two minutes of handling per square foot
	laborMinutesPerSqFt = decimal.NewFromInt(2)
)

// ProductionCost is the material, ink and labor cost of one sheet.
// Component costs are rounded to cents; TotalCost is the exact sum.
type ProductionCost struct {
	SqFt          decimal.Decimal `json:"sqFt"`
	FilmCost      decimal.Decimal `json:"filmCost"`
	InkCost       decimal.Decimal `json:"inkCost"`
	PowderCost    decimal.Decimal `json:"powderCost"`
	LaborCost     decimal.Decimal `json:"laborCost"`
	EquipmentCost decimal.Decimal `json:"equipmentCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
}

// CalculateProductionCost returns the production cost of a width x length
// sheet in inches. Ink is metered per square inch, everything else per
// square foot.
func CalculateProductionCost(width, length float64, cfg CostConfig) ProductionCost {
	sqIn := decimal.NewFromFloat(width).Mul(decimal.NewFromFloat(length))
	perSqFt := func(rate decimal.Decimal) decimal.Decimal {
		return rate.Mul(sqIn).Div(sqInPerSqFt)
	}

	film := perSqFt(cfg.FilmCostPerSqFt)
	ink := cfg.InkCostPerSqIn.Mul(sqIn)
	powder := perSqFt(cfg.PowderCostPerSqFt)
	labor := cfg.LaborRatePerHour.Mul(sqIn).Mul(laborMinutesPerSqFt).Div(sqInPerSqFt.Mul(minutesPerHour))
	equipment := perSqFt(cfg.EquipmentOverheadPerSqFt)

	return ProductionCost{
		SqFt:          sqIn.Div(sqInPerSqFt),
		FilmCost:      pricing.Round2(film),
		InkCost:       pricing.Round2(ink),
		PowderCost:    pricing.Round2(powder),
		LaborCost:     pricing.Round2(labor),
		EquipmentCost: pricing.Round2(equipment),
		TotalCost:     decimal.Sum(film, ink, powder, labor, equipment),
	}
}

// Costs maps a production cost onto the shared margin cost vector.
// DTF has no garment; film, powder and equipment count as overhead.
func (p ProductionCost) Costs() pricing.CostBreakdown {
	return pricing.CostBreakdown{
		GarmentCost:  decimal.Zero,
		InkCost:      p.InkCost,
		OverheadCost: p.FilmCost.Add(p.PowderCost).Add(p.EquipmentCost),
		LaborCost:    decimal.NewNullDecimal(p.LaborCost),
	}
}

// SheetPrice is the sale price of one sheet and its margin.
type SheetPrice struct {
	Tier           SheetTier               `json:"tier"`
	Unpriced       bool                    `json:"unpriced"`
	BasePrice      decimal.Decimal         `json:"basePrice"`
	Price          decimal.Decimal         `json:"price"`
	ProductionCost ProductionCost          `json:"productionCost"`
	Margin         pricing.MarginBreakdown `json:"margin"`
}

// CalculatePrice prices one sheet of the given length. A length with no
// configured tier yields a zero price and zero-cost margin with Unpriced set.
//
// Modifiers apply in order: customer discount, rush percentage then flat
// fee, film multiplier. The result is rounded to cents.
func CalculatePrice(sheetLength float64, customer CustomerTier, rush RushType, film FilmType, t Template) SheetPrice {
	tier, ok := t.FindSheetTier(sheetLength)
	if !ok {
		return SheetPrice{
			Unpriced:  true,
			BasePrice: decimal.Zero,
			Price:     decimal.Zero,
			Margin:    pricing.CalculateMargin(decimal.Zero, pricing.CostBreakdown{}),
		}
	}

	base := tier.RetailPrice
	if customer == CustomerContract && tier.ContractPrice.Valid {
		base = tier.ContractPrice.Decimal
	}

	price := base
	for _, discount := range t.CustomerTierDiscounts {
		if discount.Tier == customer {
			price = price.Mul(decimal.NewFromInt(1).Sub(pricing.Percent(discount.DiscountPercent)))
			break
		}
	}
	for _, fee := range t.RushFees {
		if fee.Turnaround == rush {
			price = price.Mul(decimal.NewFromInt(1).Add(pricing.Percent(fee.PercentageUpcharge)))
			if fee.FlatFee.Valid {
				price = price.Add(fee.FlatFee.Decimal)
			}
			break
		}
	}
	for _, multiplier := range t.FilmTypes {
		if multiplier.Type == film {
			price = price.Mul(multiplier.Multiplier)
			break
		}
	}
	price = pricing.Round2(price)

	production := CalculateProductionCost(tier.Width, tier.Length, t.CostConfig)
	return SheetPrice{
		Tier:           tier,
		BasePrice:      base,
		Price:          price,
		ProductionCost: production,
		Margin:         pricing.CalculateMargin(price, production.Costs()),
	}
}

// CalculateTemplateHealth averages the margin of every sheet tier at its
// retail price, ignoring order-specific modifiers.
func CalculateTemplateHealth(t Template) pricing.TemplateHealth {
	percentages := make([]decimal.Decimal, 0, len(t.SheetTiers))
	for _, tier := range t.SheetTiers {
		production := CalculateProductionCost(tier.Width, tier.Length, t.CostConfig)
		margin := pricing.CalculateMargin(tier.RetailPrice, production.Costs())
		percentages = append(percentages, margin.Percentage)
	}
	return pricing.HealthFromPercentages(percentages)
}

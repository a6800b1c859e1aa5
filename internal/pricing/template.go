package pricing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// QuantityTier maps a quantity range to a column of base prices.
// MaxQty nil means the tier is unbounded.
type QuantityTier struct {
	MinQty int    `json:"minQty"`
	MaxQty *int   `json:"maxQty"`
	Label  string `json:"label"`
}

// Contains reports whether qty falls inside the tier.
func (t QuantityTier) Contains(qty int) bool {
	return qty >= t.MinQty && (t.MaxQty == nil || qty <= *t.MaxQty)
}

// ColorPricing is the per-hit rate charged for an exact color count.
type ColorPricing struct {
	Colors     int             `json:"colors"`
	RatePerHit decimal.Decimal `json:"ratePerHit"`
}

// LocationUpcharge is a flat per-piece fee for an extra print location.
type LocationUpcharge struct {
	Location string          `json:"location"`
	Upcharge decimal.Decimal `json:"upcharge"`
}

// GarmentTypePricing applies a markup to every piece of a garment category.
type GarmentTypePricing struct {
	GarmentCategory  string              `json:"garmentCategory"`
	BaseMarkup       decimal.Decimal     `json:"baseMarkup"`
	SetupFeeOverride decimal.NullDecimal `json:"setupFeeOverride"`
}

// SetupFeeConfig governs one-time screen fees.
type SetupFeeConfig struct {
	PerScreenFee           decimal.Decimal `json:"perScreenFee"`
	BulkWaiverThreshold    int             `json:"bulkWaiverThreshold"`
	ReorderDiscountPercent decimal.Decimal `json:"reorderDiscountPercent"`
}

// ColorFallback selects how a color count without its own rate is priced.
type ColorFallback string

const (
	// ColorFallbackHighestTier prices unknown counts with the rate of the
	// highest configured color count. It is the default.
	ColorFallbackHighestTier ColorFallback = "highest-tier"
	// ColorFallbackNone charges no color upcharge for unknown counts.
	ColorFallbackNone ColorFallback = "none"
)

// ScreenPrintMatrix is the full rate card of a screen-print template.
type ScreenPrintMatrix struct {
	QuantityTiers      []QuantityTier             `json:"quantityTiers"`
	BasePriceByTier    []decimal.Decimal          `json:"basePriceByTier"`
	ColorPricing       []ColorPricing             `json:"colorPricing"`
	LocationUpcharges  []LocationUpcharge         `json:"locationUpcharges"`
	GarmentTypePricing []GarmentTypePricing       `json:"garmentTypePricing"`
	SetupConfig        SetupFeeConfig             `json:"setupConfig"`
	PriceOverrides     map[string]decimal.Decimal `json:"priceOverrides,omitempty"`
	ColorFallback      ColorFallback              `json:"colorFallback,omitempty"`
}

// OverrideKey builds the PriceOverrides key for a cell. colorIndex is the
// zero-based matrix column, so column 0 holds one-color prices.
func OverrideKey(tierIndex, colorIndex int) string {
	return fmt.Sprintf("%d-%d", tierIndex, colorIndex)
}

// CostSourceKind names where the garment cost of a margin comes from.
type CostSourceKind string

const (
	CostSourceCatalog CostSourceKind = "catalog"
	CostSourceManual  CostSourceKind = "manual"
)

// GarmentCostSource is either the catalog price supplied by the caller or a
// fixed manual amount. The zero value is the catalog source.
type GarmentCostSource struct {
	kind   CostSourceKind
	manual decimal.Decimal
}

// CatalogGarmentCost returns a source that defers to the caller's catalog price.
func CatalogGarmentCost() GarmentCostSource {
	return GarmentCostSource{kind: CostSourceCatalog}
}

// ManualGarmentCost returns a source fixed at amount. Negative amounts are rejected.
func ManualGarmentCost(amount decimal.Decimal) (GarmentCostSource, error) {
	if amount.IsNegative() {
		return GarmentCostSource{}, fmt.Errorf("%w: %s", ErrNegativeManualCost, amount)
	}
	return GarmentCostSource{kind: CostSourceManual, manual: amount}, nil
}

// Kind returns the source kind.
func (s GarmentCostSource) Kind() CostSourceKind {
	if s.kind == "" {
		return CostSourceCatalog
	}
	return s.kind
}

// Manual returns the fixed amount and true for a manual source.
func (s GarmentCostSource) Manual() (decimal.Decimal, bool) {
	if s.kind != CostSourceManual {
		return decimal.Zero, false
	}
	return s.manual, true
}

// Resolve returns the garment cost to use given the caller's catalog price.
func (s GarmentCostSource) Resolve(catalogCost decimal.Decimal) decimal.Decimal {
	if amount, ok := s.Manual(); ok {
		return amount
	}
	return catalogCost
}

// CostConfig is the shop's cost model used for screen-print margins.
type CostConfig struct {
	GarmentCostSource GarmentCostSource
	InkCostPerHit     decimal.Decimal
	ShopOverheadRate  decimal.Decimal
	LaborRate         decimal.NullDecimal
}

type costConfigJSON struct {
	GarmentCostSource CostSourceKind      `json:"garmentCostSource"`
	ManualGarmentCost decimal.NullDecimal `json:"manualGarmentCost"`
	InkCostPerHit     decimal.Decimal     `json:"inkCostPerHit"`
	ShopOverheadRate  decimal.Decimal     `json:"shopOverheadRate"`
	LaborRate         decimal.NullDecimal `json:"laborRate"`
}

// MarshalJSON flattens the garment cost source into a discriminator and amount.
func (c CostConfig) MarshalJSON() ([]byte, error) {
	out := costConfigJSON{
		GarmentCostSource: c.GarmentCostSource.Kind(),
		InkCostPerHit:     c.InkCostPerHit,
		ShopOverheadRate:  c.ShopOverheadRate,
		LaborRate:         c.LaborRate,
	}
	if amount, ok := c.GarmentCostSource.Manual(); ok {
		out.ManualGarmentCost = decimal.NewNullDecimal(amount)
	}
	return json.Marshal(out)
}

// UnmarshalJSON rejects a manual source without a usable amount.
func (c *CostConfig) UnmarshalJSON(data []byte) error {
	var in costConfigJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var source GarmentCostSource
	switch in.GarmentCostSource {
	case "", CostSourceCatalog:
		source = CatalogGarmentCost()
	case CostSourceManual:
		if !in.ManualGarmentCost.Valid {
			return ErrManualCostMissing
		}
		var err error
		if source, err = ManualGarmentCost(in.ManualGarmentCost.Decimal); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCostSource, in.GarmentCostSource)
	}

	*c = CostConfig{
		GarmentCostSource: source,
		InkCostPerHit:     in.InkCostPerHit,
		ShopOverheadRate:  in.ShopOverheadRate,
		LaborRate:         in.LaborRate,
	}
	return nil
}

// Template is a screen-print pricing template. Quotes reference it by ID
// and keep a frozen copy of the computed price.
type Template struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	PricingTier       string            `json:"pricingTier"`
	Matrix            ScreenPrintMatrix `json:"matrix"`
	CostConfig        CostConfig        `json:"costConfig"`
	IsDefault         bool              `json:"isDefault"`
	IsIndustryDefault bool              `json:"isIndustryDefault"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

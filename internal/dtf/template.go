// Package dtf prices direct-to-film gang sheets: production cost of a sheet
// and its sale price under customer, rush and film modifiers.
package dtf

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTier identifies a customer pricing class.
type CustomerTier string

const (
	CustomerStandard  CustomerTier = "standard"
	CustomerPreferred CustomerTier = "preferred"
	CustomerContract  CustomerTier = "contract"
	CustomerWholesale CustomerTier = "wholesale"
)

// RushType identifies a turnaround option.
type RushType string

const (
	RushStandard RushType = "standard"
	Rush2Day     RushType = "2-day"
	RushNextDay  RushType = "next-day"
	RushSameDay  RushType = "same-day"
)

// FilmType identifies a transfer film stock.
type FilmType string

const (
	FilmStandard FilmType = "standard"
	FilmGlossy   FilmType = "glossy"
	FilmMetallic FilmType = "metallic"
	FilmGlow     FilmType = "glow"
)

// SheetTier is one sellable sheet length on the roll.
type SheetTier struct {
	Width         float64             `json:"width"`
	Length        float64             `json:"length"`
	RetailPrice   decimal.Decimal     `json:"retailPrice"`
	ContractPrice decimal.NullDecimal `json:"contractPrice"`
}

// RushFee is the upcharge for a turnaround.
type RushFee struct {
	Turnaround         RushType            `json:"turnaround"`
	PercentageUpcharge decimal.Decimal     `json:"percentageUpcharge"`
	FlatFee            decimal.NullDecimal `json:"flatFee"`
}

// FilmTypeMultiplier scales the sheet price for a film stock.
type FilmTypeMultiplier struct {
	Type       FilmType        `json:"type"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// CustomerTierDiscount is the percentage discount of a customer tier.
type CustomerTierDiscount struct {
	Tier            CustomerTier    `json:"tier"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// CostConfig holds the unit production rates of a DTF sheet.
type CostConfig struct {
	FilmCostPerSqFt          decimal.Decimal `json:"filmCostPerSqFt"`
	InkCostPerSqIn           decimal.Decimal `json:"inkCostPerSqIn"`
	PowderCostPerSqFt        decimal.Decimal `json:"powderCostPerSqFt"`
	LaborRatePerHour         decimal.Decimal `json:"laborRatePerHour"`
	EquipmentOverheadPerSqFt decimal.Decimal `json:"equipmentOverheadPerSqFt"`
}

// Template is a DTF rate card.
type Template struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	SheetTiers            []SheetTier            `json:"sheetTiers"`
	RushFees              []RushFee              `json:"rushFees"`
	FilmTypes             []FilmTypeMultiplier   `json:"filmTypes"`
	CustomerTierDiscounts []CustomerTierDiscount `json:"customerTierDiscounts"`
	CostConfig            CostConfig             `json:"costConfig"`
	IsDefault             bool                   `json:"isDefault"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

// FindSheetTier returns the tier with exactly the given length.
func (t Template) FindSheetTier(length float64) (SheetTier, bool) {
	for _, tier := range t.SheetTiers {
		if tier.Length == length {
			return tier, true
		}
	}
	return SheetTier{}, false
}

var (
	ErrMissingTemplateID = errors.New("dtf template id is required")
	ErrSheetDimensions   = errors.New("sheet tier dimensions must be positive")
	ErrMixedRollWidth    = errors.New("all sheet tiers must share the roll width")
	ErrDuplicateLength   = errors.New("sheet tier lengths must be unique")
	ErrNegativePrice     = errors.New("sheet tier price must not be negative")
	ErrFilmMultiplier    = errors.New("film multiplier must be positive")
)

// Validate checks the DTF template invariants.
func (t Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, ErrMissingTemplateID)
	}

	seen := make(map[float64]bool, len(t.SheetTiers))
	for i, tier := range t.SheetTiers {
		if tier.Width <= 0 || tier.Length <= 0 {
			errs = append(errs, fmt.Errorf("sheet tier %d: %w", i, ErrSheetDimensions))
		}
		if i > 0 && tier.Width != t.SheetTiers[0].Width {
			errs = append(errs, fmt.Errorf("sheet tier %d width %.2f: %w", i, tier.Width, ErrMixedRollWidth))
		}
		if seen[tier.Length] {
			errs = append(errs, fmt.Errorf("sheet tier %d length %.2f: %w", i, tier.Length, ErrDuplicateLength))
		}
		seen[tier.Length] = true
		if tier.RetailPrice.IsNegative() || (tier.ContractPrice.Valid && tier.ContractPrice.Decimal.IsNegative()) {
			errs = append(errs, fmt.Errorf("sheet tier %d: %w", i, ErrNegativePrice))
		}
	}
	for _, film := range t.FilmTypes {
		if !film.Multiplier.IsPositive() {
			errs = append(errs, fmt.Errorf("film %s: %w", film.Type, ErrFilmMultiplier))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("dtf template %q: %w", t.ID, err)
	}
	return nil
}

package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrManualCostMissing    = errors.New("manual garment cost source requires manualGarmentCost")
	ErrNegativeManualCost   = errors.New("manual garment cost must not be negative")
	ErrUnknownCostSource    = errors.New("unknown garment cost source")
	ErrTierOrder            = errors.New("quantity tiers must be ordered by minQty")
	ErrTierGap              = errors.New("quantity tiers must be gapless")
	ErrTierRange            = errors.New("quantity tier range is invalid")
	ErrUnboundedTierNotLast = errors.New("only the last quantity tier may be unbounded")
	ErrBasePriceLength      = errors.New("basePriceByTier length must equal tier count")
	ErrColorCount           = errors.New("color pricing count must be between 1 and 8")
	ErrMissingTemplateID    = errors.New("template id is required")
)

// MaxColors is the largest color count a screen can carry.
const MaxColors = 8

// ValidateTiers checks that tiers are ordered, non-overlapping and gapless.
func ValidateTiers(tiers []QuantityTier) error {
	var errs []error
	for i, tier := range tiers {
		if tier.MinQty < 1 || (tier.MaxQty != nil && *tier.MaxQty < tier.MinQty) {
			errs = append(errs, fmt.Errorf("tier %d (%s): %w", i, tier.Label, ErrTierRange))
		}
		if i == 0 {
			continue
		}

		prev := tiers[i-1]
		if prev.MaxQty == nil {
			errs = append(errs, fmt.Errorf("tier %d (%s): %w", i-1, prev.Label, ErrUnboundedTierNotLast))
			continue
		}
		if tier.MinQty <= prev.MinQty {
			errs = append(errs, fmt.Errorf("tier %d (%s): %w", i, tier.Label, ErrTierOrder))
			continue
		}
		if tier.MinQty != *prev.MaxQty+1 {
			errs = append(errs, fmt.Errorf("tier %d (%s) starts at %d after %d: %w", i, tier.Label, tier.MinQty, *prev.MaxQty, ErrTierGap))
		}
	}
	return errors.Join(errs...)
}

// Validate checks matrix invariants before any calculation uses it.
func (m ScreenPrintMatrix) Validate() error {
	var errs []error
	if err := ValidateTiers(m.QuantityTiers); err != nil {
		errs = append(errs, err)
	}
	if len(m.BasePriceByTier) != len(m.QuantityTiers) {
		errs = append(errs, fmt.Errorf("%w: %d prices for %d tiers", ErrBasePriceLength, len(m.BasePriceByTier), len(m.QuantityTiers)))
	}
	for _, entry := range m.ColorPricing {
		if entry.Colors < 1 || entry.Colors > MaxColors {
			errs = append(errs, fmt.Errorf("%w: got %d", ErrColorCount, entry.Colors))
		}
	}
	return errors.Join(errs...)
}

// Validate checks template invariants. The cost source invariant is
// enforced by GarmentCostSource construction and JSON decoding.
func (t Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, ErrMissingTemplateID)
	}
	if err := t.Matrix.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("template %q: %w", t.ID, err)
	}
	return nil
}

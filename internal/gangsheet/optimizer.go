// Package gangsheet packs DTF designs onto roll-width sheets and picks the
// cheapest sheet length for each packed sheet.
package gangsheet

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printshop/internal/dtf"
	"github.com/Simplici0/printshop/internal/pricing"
)

// epsilon absorbs float error when summing inch offsets.
const epsilon = 1e-9

// DefaultMargin is the gap in inches kept from sheet edges and between designs.
const DefaultMargin = 0.5

// Shape is the outline of an artwork. Packing always uses its bounding box.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeCustom    Shape = "custom"
)

// Mode selects how line items share sheets.
type Mode string

const (
	// ModeCombine packs every design together to minimise sheet count.
	ModeCombine Mode = "combine"
	// ModeSplit gives every artwork its own sheets.
	ModeSplit Mode = "split"
)

// LineItem is one design ordered Quantity times.
type LineItem struct {
	ID          string  `json:"id"`
	ArtworkName string  `json:"artworkName"`
	Shape       Shape   `json:"shape"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Quantity    int     `json:"quantity"`
}

func (li LineItem) label() string {
	if li.ArtworkName != "" {
		return li.ArtworkName
	}
	return li.ID
}

// PositionedDesign is one placed design instance. X and Y are the top-left
// corner in inches from the sheet's top-left corner.
type PositionedDesign struct {
	LineItemID string  `json:"lineItemId"`
	Label      string  `json:"label"`
	Instance   int     `json:"instance"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Area returns the printed area in square inches.
func (p PositionedDesign) Area() float64 {
	return p.Width * p.Height
}

// Sheet is one packed sheet and the tier chosen for it.
type Sheet struct {
	Tier        dtf.SheetTier      `json:"tier"`
	Designs     []PositionedDesign `json:"designs"`
	UsedLength  float64            `json:"usedLength"`
	Utilization float64            `json:"utilization"`
	Cost        decimal.Decimal    `json:"cost"`
}

// Calculation is the optimizer output.
type Calculation struct {
	Sheets      []Sheet         `json:"sheets"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	TotalSheets int             `json:"totalSheets"`
	Margin      float64         `json:"margin"`
	Mode        Mode            `json:"mode"`
}

// Options tunes packing.
type Options struct {
	Margin float64 `json:"margin"`
	Mode   Mode    `json:"mode"`
}

// DefaultOptions returns a half-inch margin in combine mode.
func DefaultOptions() Options {
	return Options{Margin: DefaultMargin, Mode: ModeCombine}
}

// Optimize packs items onto sheets cut from a roll as wide as the tiers.
//
// Instances are sorted tallest first and placed left to right on shelves.
// The shelf sequence is then cut into sheets so that the summed price of
// the tiers covering them is minimal; no sheet runs past the longest tier.
// Without tiers there is nothing to price and an empty result is returned.
func Optimize(items []LineItem, tiers []dtf.SheetTier, opts Options) (Calculation, error) {
	margin := math.Max(opts.Margin, 0)
	mode := opts.Mode
	switch mode {
	case "":
		mode = ModeCombine
	case ModeCombine, ModeSplit:
	default:
		return Calculation{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	calc := Calculation{Sheets: []Sheet{}, TotalCost: decimal.Zero, Margin: margin, Mode: mode}
	if len(tiers) == 0 {
		return calc, nil
	}

	rollWidth := tiers[0].Width
	maxLength := 0.0
	for _, tier := range tiers {
		maxLength = math.Max(maxLength, tier.Length)
	}

	if err := checkFit(items, rollWidth, maxLength, margin); err != nil {
		return Calculation{}, err
	}

	for _, group := range groupItems(items, mode) {
		instances := expand(group)
		if len(instances) == 0 {
			continue
		}
		sortTallestFirst(instances)

		for _, sheet := range cutSheets(packShelves(instances, rollWidth, margin), tiers, margin) {
			calc.Sheets = append(calc.Sheets, sheet)
			calc.TotalCost = calc.TotalCost.Add(sheet.Cost)
		}
	}

	calc.TotalSheets = len(calc.Sheets)
	return calc, nil
}

func checkFit(items []LineItem, rollWidth, maxLength, margin float64) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if item.Width <= 0 || item.Height <= 0 {
			return fmt.Errorf("%w: %s is %.2fx%.2f", ErrInvalidDesign, item.label(), item.Width, item.Height)
		}
		if item.Width+2*margin > rollWidth+epsilon {
			return &DesignExceedsSheetWidthError{
				LineItemID:  item.ID,
				ArtworkName: item.label(),
				Width:       item.Width,
				MaxWidth:    rollWidth - 2*margin,
			}
		}
		if item.Height+2*margin > maxLength+epsilon {
			return &DesignExceedsSheetLengthError{
				LineItemID:  item.ID,
				ArtworkName: item.label(),
				Height:      item.Height,
				MaxLength:   maxLength - 2*margin,
			}
		}
	}
	return nil
}

// groupItems returns one group in combine mode and one group per artwork
// label, in first-seen order, in split mode.
func groupItems(items []LineItem, mode Mode) [][]LineItem {
	if mode != ModeSplit {
		return [][]LineItem{items}
	}

	index := make(map[string]int)
	var groups [][]LineItem
	for _, item := range items {
		key := item.label()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], item)
	}
	return groups
}

func expand(items []LineItem) []PositionedDesign {
	var out []PositionedDesign
	for _, item := range items {
		for i := 1; i <= item.Quantity; i++ {
			out = append(out, PositionedDesign{
				LineItemID: item.ID,
				Label:      item.label(),
				Instance:   i,
				Width:      item.Width,
				Height:     item.Height,
			})
		}
	}
	return out
}

func sortTallestFirst(instances []PositionedDesign) {
	sort.SliceStable(instances, func(i, j int) bool {
		if instances[i].Height != instances[j].Height {
			return instances[i].Height > instances[j].Height
		}
		return instances[i].Width > instances[j].Width
	})
}

type shelf struct {
	designs []PositionedDesign
	height  float64
}

// packShelves fills shelves left to right with margin inches between
// neighbours and from the roll edges. Shelf Y offsets are set when shelves
// are cut into sheets.
func packShelves(instances []PositionedDesign, rollWidth, margin float64) []shelf {
	var shelves []shelf
	nextX := 0.0
	for _, inst := range instances {
		if n := len(shelves); n > 0 && nextX+inst.Width+margin <= rollWidth+epsilon {
			inst.X = nextX
			shelves[n-1].designs = append(shelves[n-1].designs, inst)
			nextX += inst.Width + margin
			continue
		}
		inst.X = margin
		shelves = append(shelves, shelf{designs: []PositionedDesign{inst}, height: inst.Height})
		nextX = margin + inst.Width + margin
	}
	return shelves
}

// cutSheets splits the shelf sequence into consecutive runs, one run per
// sheet, choosing the cuts that minimise the summed tier price. best[j] is
// the cheapest way to print shelves j..n-1. On equal cost the longer first
// sheet wins.
func cutSheets(shelves []shelf, tiers []dtf.SheetTier, margin float64) []Sheet {
	n := len(shelves)
	best := make([]decimal.Decimal, n+1)
	next := make([]int, n+1)
	tierAt := make([]int, n+1)
	feasible := make([]bool, n+1)
	best[n] = decimal.Zero
	feasible[n] = true

	// offset[k] is the length taken by the first k shelves and their gaps.
	offset := make([]float64, n+1)
	for k, s := range shelves {
		offset[k+1] = offset[k] + s.height + margin
	}

	for j := n - 1; j >= 0; j-- {
		for i := n; i > j; i-- {
			if !feasible[i] {
				continue
			}
			t, ok := cheapestTier(tiers, margin+offset[i]-offset[j])
			if !ok {
				continue
			}
			cost := pricing.Round2(tiers[t].RetailPrice).Add(best[i])
			if !feasible[j] || cost.LessThan(best[j]) {
				best[j], next[j], tierAt[j], feasible[j] = cost, i, t, true
			}
		}
	}

	var sheets []Sheet
	for j := 0; j < n; j = next[j] {
		sheets = append(sheets, buildSheet(shelves[j:next[j]], tiers[tierAt[j]], margin))
	}
	return sheets
}

// cheapestTier picks the cheapest tier at least length inches long,
// preferring the shorter tier on equal price.
func cheapestTier(tiers []dtf.SheetTier, length float64) (int, bool) {
	best := -1
	for i, tier := range tiers {
		if tier.Length+epsilon < length {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		cmp := tier.RetailPrice.Cmp(tiers[best].RetailPrice)
		if cmp < 0 || (cmp == 0 && tier.Length < tiers[best].Length) {
			best = i
		}
	}
	return best, best >= 0
}

func buildSheet(run []shelf, tier dtf.SheetTier, margin float64) Sheet {
	var designs []PositionedDesign
	printed := 0.0
	y := margin
	for _, s := range run {
		for _, design := range s.designs {
			design.Y = y
			designs = append(designs, design)
			printed += design.Area()
		}
		y += s.height + margin
	}

	utilization := 0.0
	if sheetArea := tier.Width * tier.Length; sheetArea > 0 {
		utilization = math.Min(math.Max(printed/sheetArea*100, 0), 100)
	}

	return Sheet{
		Tier:        tier,
		Designs:     designs,
		UsedLength:  y,
		Utilization: utilization,
		Cost:        pricing.Round2(tier.RetailPrice),
	}
}

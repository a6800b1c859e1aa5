package pricing

import "github.com/shopspring/decimal"

// DiffReferenceGarmentCost is the catalog garment cost both grids are
// built at when diffing templates.
var DiffReferenceGarmentCost = decimal.RequireFromString("3.50")

// CellChange describes one cell whose price or margin moved.
type CellChange struct {
	TierIndex       int             `json:"tierIndex"`
	ColorCount      int             `json:"colorCount"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	ProposedPrice   decimal.Decimal `json:"proposedPrice"`
	MarginPctChange decimal.Decimal `json:"marginPctChange"`
}

// TemplateDiff summarises the blast radius of a template edit.
type TemplateDiff struct {
	ChangedCells    int             `json:"changedCells"`
	TotalCells      int             `json:"totalCells"`
	AvgMarginChange decimal.Decimal `json:"avgMarginChange"`
	Changes         []CellChange    `json:"changes"`
}

// CalculateDiff compares the price grids of two template versions cell by
// cell. TotalCells counts the proposed grid; cells the original does not
// have are compared against a zero price and margin. AvgMarginChange is
// averaged over changed cells only.
func CalculateDiff(original, proposed Template) TemplateDiff {
	before := BuildFullMatrixData(original, DiffReferenceGarmentCost)
	after := BuildFullMatrixData(proposed, DiffReferenceGarmentCost)

	diff := TemplateDiff{AvgMarginChange: decimal.Zero, Changes: []CellChange{}}
	var deltas []decimal.Decimal

	for _, row := range after.Rows {
		for colorIndex, cell := range row.Cells {
			diff.TotalCells++

			prev, ok := before.Cell(row.TierIndex, colorIndex)
			if !ok {
				prev = MatrixCell{Price: decimal.Zero, Margin: MarginBreakdown{Percentage: decimal.Zero}}
			}
			if ok && prev.Price.Equal(cell.Price) && prev.Margin.Percentage.Equal(cell.Margin.Percentage) {
				continue
			}

			delta := cell.Margin.Percentage.Sub(prev.Margin.Percentage)
			deltas = append(deltas, delta)
			diff.Changes = append(diff.Changes, CellChange{
				TierIndex:       row.TierIndex,
				ColorCount:      cell.ColorCount,
				OriginalPrice:   prev.Price,
				ProposedPrice:   cell.Price,
				MarginPctChange: delta,
			})
		}
	}

	diff.ChangedCells = len(diff.Changes)
	if diff.ChangedCells > 0 {
		diff.AvgMarginChange = Average(deltas)
	}
	return diff
}

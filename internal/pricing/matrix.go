package pricing

import "github.com/shopspring/decimal"

// DefaultColorColumns is the number of color columns shown in a matrix preview.
const DefaultColorColumns = 8

// MatrixCell is one (tier, color count) price with its margin.
type MatrixCell struct {
	ColorCount int             `json:"colorCount"`
	Price      decimal.Decimal `json:"price"`
	Overridden bool            `json:"overridden"`
	Margin     MarginBreakdown `json:"margin"`
}

// MatrixRow holds every color column of one quantity tier.
type MatrixRow struct {
	TierIndex int          `json:"tierIndex"`
	TierLabel string       `json:"tierLabel"`
	Cells     []MatrixCell `json:"cells"`
}

// MatrixData is the full price grid of a template.
type MatrixData struct {
	TemplateID string      `json:"templateId"`
	Columns    int         `json:"columns"`
	Rows       []MatrixRow `json:"rows"`
}

// Cells returns every cell in row-major order.
func (d MatrixData) Cells() []MatrixCell {
	var cells []MatrixCell
	for _, row := range d.Rows {
		cells = append(cells, row.Cells...)
	}
	return cells
}

// Cell returns the cell at tierIndex and zero-based colorIndex.
func (d MatrixData) Cell(tierIndex, colorIndex int) (MatrixCell, bool) {
	if tierIndex < 0 || tierIndex >= len(d.Rows) {
		return MatrixCell{}, false
	}
	cells := d.Rows[tierIndex].Cells
	if colorIndex < 0 || colorIndex >= len(cells) {
		return MatrixCell{}, false
	}
	return cells[colorIndex], true
}

// CalculateCellPrice returns the single-location price of a matrix cell
// before any override: round2(base + color upcharge).
func CalculateCellPrice(m ScreenPrintMatrix, tierIndex, colorCount int) decimal.Decimal {
	return Round2(GetBasePriceForTier(m, tierIndex).Add(GetColorUpcharge(m, colorCount)))
}

// BuildFullMatrixData builds the tier x DefaultColorColumns grid of t.
func BuildFullMatrixData(t Template, garmentBaseCost decimal.Decimal) MatrixData {
	return BuildMatrixData(t, garmentBaseCost, DefaultColorColumns)
}

// BuildMatrixData builds the price grid of t with the given column count.
// Margins always use garmentBaseCost as a catalog cost, whatever the
// template's configured garment cost source, so previews show catalog
// economics.
func BuildMatrixData(t Template, garmentBaseCost decimal.Decimal, columns int) MatrixData {
	if columns <= 0 {
		columns = DefaultColorColumns
	}

	m := t.Matrix
	data := MatrixData{
		TemplateID: t.ID,
		Columns:    columns,
		Rows:       make([]MatrixRow, 0, len(m.QuantityTiers)),
	}

	for tierIndex, tier := range m.QuantityTiers {
		row := MatrixRow{
			TierIndex: tierIndex,
			TierLabel: tier.Label,
			Cells:     make([]MatrixCell, 0, columns),
		}
		for colorIndex := 0; colorIndex < columns; colorIndex++ {
			colorCount := colorIndex + 1
			cell := MatrixCell{ColorCount: colorCount}

			if override, ok := m.PriceOverrides[OverrideKey(tierIndex, colorIndex)]; ok {
				cell.Price = override
				cell.Overridden = true
			} else {
				cell.Price = CalculateCellPrice(m, tierIndex, colorCount)
			}

			costs := BuildCostBreakdown(cell.Price, colorCount, 1, t.CostConfig, garmentBaseCost)
			cell.Margin = CalculateMargin(cell.Price, costs)
			row.Cells = append(row.Cells, cell)
		}
		data.Rows = append(data.Rows, row)
	}

	return data
}

// TemplateHealth is the aggregate margin of a whole template.
type TemplateHealth struct {
	AveragePercentage decimal.Decimal `json:"averagePercentage"`
	CellCount         int             `json:"cellCount"`
	Indicator         MarginIndicator `json:"indicator"`
}

// CalculateTemplateHealth averages the margin of every matrix cell.
// A template without cells cannot be judged healthy and reports caution.
func CalculateTemplateHealth(t Template, garmentBaseCost decimal.Decimal) TemplateHealth {
	cells := BuildFullMatrixData(t, garmentBaseCost).Cells()
	percentages := make([]decimal.Decimal, 0, len(cells))
	for _, cell := range cells {
		percentages = append(percentages, cell.Margin.Percentage)
	}
	return HealthFromPercentages(percentages)
}

// HealthFromPercentages aggregates already computed margin percentages.
// An empty input reports caution.
func HealthFromPercentages(percentages []decimal.Decimal) TemplateHealth {
	if len(percentages) == 0 {
		return TemplateHealth{AveragePercentage: decimal.Zero, Indicator: IndicatorCaution}
	}
	avg := Average(percentages)
	return TemplateHealth{
		AveragePercentage: avg,
		CellCount:         len(percentages),
		Indicator:         GetMarginIndicator(avg),
	}
}

package gangsheet

// CanvasLayout is the render view of one sheet.
type CanvasLayout struct {
	SheetWidth  float64            `json:"sheetWidth"`
	SheetHeight float64            `json:"sheetHeight"`
	Designs     []PositionedDesign `json:"designs"`
	Margins     float64            `json:"margins"`
}

// CanvasLayouts projects every sheet into a layout for rendering.
func (c Calculation) CanvasLayouts() []CanvasLayout {
	layouts := make([]CanvasLayout, 0, len(c.Sheets))
	for _, sheet := range c.Sheets {
		layouts = append(layouts, CanvasLayout{
			SheetWidth:  sheet.Tier.Width,
			SheetHeight: sheet.Tier.Length,
			Designs:     sheet.Designs,
			Margins:     c.Margin,
		})
	}
	return layouts
}

// Package quote prices order lines against the loaded templates, totals
// them and stores frozen snapshots in SQLite.
package quote

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printshop/internal/dtf"
	"github.com/Simplici0/printshop/internal/gangsheet"
	"github.com/Simplici0/printshop/internal/pricing"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")
	ErrInvalidLine   = errors.New("invalid quote line")
	ErrEmptyDraft    = errors.New("quote has no lines")
	ErrUnknownKind   = errors.New("unknown quote kind")
)

// Kind is the service type a quote is priced with.
type Kind string

const (
	KindScreenPrint Kind = "screen-print"
	KindDTF         Kind = "dtf"
)

// ScreenPrintLine is one garment style printed with the same artwork.
type ScreenPrintLine struct {
	GarmentID  string   `json:"garmentId"`
	Quantity   int      `json:"quantity"`
	ColorCount int      `json:"colorCount"`
	Locations  []string `json:"locations"`
	IsReorder  bool     `json:"isReorder"`
}

// ScreenPrintLineQuote is a priced screen-print line.
type ScreenPrintLineQuote struct {
	Line            ScreenPrintLine          `json:"line"`
	GarmentCategory string                   `json:"garmentCategory"`
	CatalogCost     decimal.Decimal          `json:"catalogCost"`
	Pricing         pricing.ScreenPrintQuote `json:"pricing"`
	TotalScreens    int                      `json:"totalScreens"`
	SetupFee        decimal.Decimal          `json:"setupFee"`
	LineTotal       decimal.Decimal          `json:"lineTotal"`
	Margin          pricing.MarginBreakdown  `json:"margin"`
}

// DTFOrder is a set of designs ganged onto sheets with shared modifiers.
type DTFOrder struct {
	Items    []gangsheet.LineItem `json:"items"`
	Customer dtf.CustomerTier     `json:"customer"`
	Rush     dtf.RushType         `json:"rush"`
	Film     dtf.FilmType         `json:"film"`
	Mode     gangsheet.Mode       `json:"mode"`
}

// DTFQuote is a packed and priced DTF order.
type DTFQuote struct {
	Order       DTFOrder                 `json:"order"`
	Calculation gangsheet.Calculation    `json:"calculation"`
	Layouts     []gangsheet.CanvasLayout `json:"layouts"`
	SheetPrices []dtf.SheetPrice         `json:"sheetPrices"`
	Total       decimal.Decimal          `json:"total"`
	Margin      pricing.MarginBreakdown  `json:"margin"`
}

// Totals are the customer-facing sums of a quote.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxPercent decimal.Decimal `json:"taxPercent"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// Pricing is the frozen calculation stored with a quote. Exactly one of
// ScreenPrint or DTF is set, matching Kind.
type Pricing struct {
	ScreenPrint []ScreenPrintLineQuote  `json:"screenPrint,omitempty"`
	DTF         *DTFQuote               `json:"dtf,omitempty"`
	Margin      pricing.MarginBreakdown `json:"margin"`
}

// Draft is an unsaved quote request.
type Draft struct {
	CustomerName string            `json:"customerName"`
	Notes        string            `json:"notes"`
	Kind         Kind              `json:"kind"`
	TemplateID   string            `json:"templateId"`
	ScreenPrint  []ScreenPrintLine `json:"screenPrint,omitempty"`
	DTF          *DTFOrder         `json:"dtf,omitempty"`
}

// Quote is a stored quote. Pricing and Totals are snapshots and are never
// recalculated when templates or the catalog change.
type Quote struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	CustomerName string    `json:"customerName"`
	Notes        string    `json:"notes"`
	Kind         Kind      `json:"kind"`
	TemplateID   string    `json:"templateId"`
	Pricing      Pricing   `json:"pricing"`
	Totals       Totals    `json:"totals"`
}

// ListItem is the listing view of a stored quote.
type ListItem struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	CustomerName string          `json:"customerName"`
	Kind         Kind            `json:"kind"`
	TemplateID   string          `json:"templateId"`
	Total        decimal.Decimal `json:"total"`
}

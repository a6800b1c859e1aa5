package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/printshop/internal/catalog"
	"github.com/Simplici0/printshop/internal/dtf"
	"github.com/Simplici0/printshop/internal/gangsheet"
	"github.com/Simplici0/printshop/internal/pricing"
)

// Catalog looks up blank garments.
type Catalog interface {
	Get(ctx context.Context, id string) (catalog.Garment, error)
}

// Templates resolves pricing templates by id.
type Templates interface {
	ScreenPrint(id string) (pricing.Template, error)
	DTF(id string) (dtf.Template, error)
}

// Store persists quote snapshots.
type Store interface {
	Insert(ctx context.Context, q Quote) error
	List(ctx context.Context, query string) ([]ListItem, error)
	Get(ctx context.Context, id string) (Quote, error)
}

// Options carries shop-wide settings used when pricing.
type Options struct {
	TaxPercent      decimal.Decimal
	GangSheetMargin float64
}

// Service prices drafts and stores them as quotes.
type Service struct {
	catalog    Catalog
	templates  Templates
	store      Store
	log        *zap.Logger
	taxPercent decimal.Decimal
	gangOpts   gangsheet.Options

	now   func() time.Time
	newID func() string
}

// NewService wires the pricing engines to the catalog, templates and store.
func NewService(cat Catalog, tpl Templates, store Store, log *zap.Logger, opts Options) *Service {
	gangOpts := gangsheet.DefaultOptions()
	gangOpts.Margin = opts.GangSheetMargin

	return &Service{
		catalog:    cat,
		templates:  tpl,
		store:      store,
		log:        log,
		taxPercent: opts.TaxPercent,
		gangOpts:   gangOpts,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// TaxPercent returns the configured sales tax rate.
func (s *Service) TaxPercent() decimal.Decimal {
	return s.taxPercent
}

// PriceScreenPrint prices one screen-print line with a template. The
// garment's catalog price and category come from the catalog; the engine
// decides whether the catalog price is used for the margin.
func (s *Service) PriceScreenPrint(ctx context.Context, templateID string, line ScreenPrintLine) (ScreenPrintLineQuote, error) {
	if err := validateScreenPrintLine(line); err != nil {
		return ScreenPrintLineQuote{}, err
	}

	tmpl, err := s.templates.ScreenPrint(templateID)
	if err != nil {
		return ScreenPrintLineQuote{}, err
	}
	garment, err := s.catalog.Get(ctx, line.GarmentID)
	if err != nil {
		return ScreenPrintLineQuote{}, err
	}

	pq := pricing.CalculatePrice(pricing.ScreenPrintRequest{
		Quantity:           line.Quantity,
		ColorCount:         line.ColorCount,
		Locations:          line.Locations,
		GarmentCategory:    garment.Category,
		CatalogGarmentCost: garment.BasePrice,
	}, tmpl)
	if pq.PricingGap {
		s.log.Warn("quantity outside every tier",
			zap.String("template_id", templateID),
			zap.Int("quantity", line.Quantity),
		)
	}

	screens := line.ColorCount * max(1, len(line.Locations))
	setup := pricing.CalculateSetupFeesForGarment(tmpl.Matrix, garment.Category, screens, line.Quantity, line.IsReorder)

	qty := decimal.NewFromInt(int64(line.Quantity))
	lineTotal := pq.PricePerPiece.Mul(qty).Add(setup)

	return ScreenPrintLineQuote{
		Line:            line,
		GarmentCategory: garment.Category,
		CatalogCost:     garment.BasePrice,
		Pricing:         pq,
		TotalScreens:    screens,
		SetupFee:        setup,
		LineTotal:       lineTotal,
		Margin:          pricing.CalculateMargin(lineTotal, pq.Margin.Costs().Scale(qty)),
	}, nil
}

func validateScreenPrintLine(line ScreenPrintLine) error {
	switch {
	case strings.TrimSpace(line.GarmentID) == "":
		return fmt.Errorf("%w: garmentId is required", ErrInvalidLine)
	case line.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidLine)
	case line.ColorCount < 1 || line.ColorCount > pricing.MaxColors:
		return fmt.Errorf("%w: colorCount must be between 1 and %d", ErrInvalidLine, pricing.MaxColors)
	}
	return nil
}

// PriceDTF packs the order onto sheets and prices every sheet with the
// order's customer, rush and film modifiers.
func (s *Service) PriceDTF(ctx context.Context, templateID string, order DTFOrder) (DTFQuote, error) {
	tmpl, err := s.templates.DTF(templateID)
	if err != nil {
		return DTFQuote{}, err
	}

	if order.Customer == "" {
		order.Customer = dtf.CustomerStandard
	}
	if order.Rush == "" {
		order.Rush = dtf.RushStandard
	}
	if order.Film == "" {
		order.Film = dtf.FilmStandard
	}
	opts := s.gangOpts
	if order.Mode != "" {
		opts.Mode = order.Mode
	}
	order.Mode = opts.Mode

	calc, err := gangsheet.Optimize(order.Items, tmpl.SheetTiers, opts)
	if err != nil {
		return DTFQuote{}, fmt.Errorf("pack gang sheets: %w", err)
	}
	if len(tmpl.SheetTiers) == 0 {
		s.log.Warn("dtf template has no sheet tiers", zap.String("template_id", templateID))
	}

	total := decimal.Zero
	costs := pricing.CostBreakdown{}
	prices := make([]dtf.SheetPrice, 0, len(calc.Sheets))
	for _, sheet := range calc.Sheets {
		price := dtf.CalculatePrice(sheet.Tier.Length, order.Customer, order.Rush, order.Film, tmpl)
		prices = append(prices, price)
		total = total.Add(price.Price)
		costs = costs.Add(price.ProductionCost.Costs())
	}

	s.log.Debug("dtf order packed",
		zap.String("template_id", templateID),
		zap.Int("sheets", calc.TotalSheets),
		zap.String("total", total.String()),
	)

	return DTFQuote{
		Order:       order,
		Calculation: calc,
		Layouts:     calc.CanvasLayouts(),
		SheetPrices: prices,
		Total:       total,
		Margin:      pricing.CalculateMargin(total, costs),
	}, nil
}

// Totals applies the configured tax rate to line totals.
func (s *Service) Totals(lineTotals []decimal.Decimal) Totals {
	return CalculateTotals(lineTotals, s.taxPercent)
}

// CalculateTotals sums unrounded line totals, rounds the subtotal once, then
// adds tax on the rounded subtotal.
func CalculateTotals(lineTotals []decimal.Decimal, taxPercent decimal.Decimal) Totals {
	subtotal := pricing.Round2(decimal.Sum(decimal.Zero, lineTotals...))
	tax := pricing.Round2(subtotal.Mul(pricing.Percent(taxPercent)))
	return Totals{
		Subtotal:   subtotal,
		TaxPercent: taxPercent,
		Tax:        tax,
		Total:      pricing.Round2(subtotal.Add(tax)),
	}
}

// Price prices every line of a draft without storing it.
func (s *Service) Price(ctx context.Context, d Draft) (Pricing, Totals, error) {
	switch d.Kind {
	case KindScreenPrint:
		if len(d.ScreenPrint) == 0 {
			return Pricing{}, Totals{}, ErrEmptyDraft
		}
		var (
			out        Pricing
			lineTotals []decimal.Decimal
			costs      pricing.CostBreakdown
		)
		for i, line := range d.ScreenPrint {
			lq, err := s.PriceScreenPrint(ctx, d.TemplateID, line)
			if err != nil {
				return Pricing{}, Totals{}, fmt.Errorf("line %d: %w", i+1, err)
			}
			out.ScreenPrint = append(out.ScreenPrint, lq)
			lineTotals = append(lineTotals, lq.LineTotal)
			costs = costs.Add(lq.Margin.Costs())
		}
		totals := s.Totals(lineTotals)
		out.Margin = pricing.CalculateMargin(totals.Subtotal, costs)
		return out, totals, nil

	case KindDTF:
		if d.DTF == nil || !hasDesigns(d.DTF.Items) {
			return Pricing{}, Totals{}, ErrEmptyDraft
		}
		dq, err := s.PriceDTF(ctx, d.TemplateID, *d.DTF)
		if err != nil {
			return Pricing{}, Totals{}, err
		}
		totals := s.Totals([]decimal.Decimal{dq.Total})
		return Pricing{DTF: &dq, Margin: dq.Margin}, totals, nil
	}

	return Pricing{}, Totals{}, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
}

func hasDesigns(items []gangsheet.LineItem) bool {
	for _, item := range items {
		if item.Quantity > 0 {
			return true
		}
	}
	return false
}

// Save prices a draft and stores the result as a new quote.
func (s *Service) Save(ctx context.Context, d Draft) (Quote, error) {
	p, totals, err := s.Price(ctx, d)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		ID:           s.newID(),
		CreatedAt:    s.now(),
		CustomerName: strings.TrimSpace(d.CustomerName),
		Notes:        strings.TrimSpace(d.Notes),
		Kind:         d.Kind,
		TemplateID:   d.TemplateID,
		Pricing:      p,
		Totals:       totals,
	}
	if err := s.store.Insert(ctx, q); err != nil {
		return Quote{}, err
	}

	s.log.Info("quote saved",
		zap.String("quote_id", q.ID),
		zap.String("kind", string(q.Kind)),
		zap.String("template_id", q.TemplateID),
		zap.String("total", q.Totals.Total.String()),
	)
	return q, nil
}

// List returns stored quotes, newest first, filtered by query.
func (s *Service) List(ctx context.Context, query string) ([]ListItem, error) {
	return s.store.List(ctx, strings.TrimSpace(query))
}

// Get returns a stored quote exactly as it was saved.
func (s *Service) Get(ctx context.Context, id string) (Quote, error) {
	return s.store.Get(ctx, id)
}

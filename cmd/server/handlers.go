package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/printshop/internal/dtf"
	"github.com/Simplici0/printshop/internal/pricing"
	"github.com/Simplici0/printshop/internal/quote"
)

type screenPrintPriceRequest struct {
	TemplateID string `json:"templateId"`
	quote.ScreenPrintLine
}

type dtfPriceRequest struct {
	TemplateID string `json:"templateId"`
	quote.DTFOrder
}

type matrixResponse struct {
	GarmentCost decimal.Decimal        `json:"garmentCost"`
	Matrix      pricing.MatrixData     `json:"matrix"`
	Health      pricing.TemplateHealth `json:"health"`
}

type quoteResponse struct {
	Pricing quote.Pricing `json:"pricing"`
	Totals  quote.Totals  `json:"totals"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.writeError(w, r, fmt.Errorf("ping database: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleGarmentsList(w http.ResponseWriter, r *http.Request) {
	garments, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, garments)
}

func (s *server) handleTemplatesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.templates.List())
}

func (s *server) handleTemplateGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.ScreenPrint(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *server) handleDTFTemplateGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.DTF(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleTemplateMatrix renders the price grid of a template. garmentCost is
// the catalog cost used for cell margins; columns is the color column count.
func (s *server) handleTemplateMatrix(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.ScreenPrint(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cost, err := garmentCostParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	columns := pricing.DefaultColorColumns
	if raw := r.URL.Query().Get("columns"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > pricing.MaxColors {
			s.writeError(w, r, fmt.Errorf("%w: columns must be between 1 and %d", errBadRequest, pricing.MaxColors))
			return
		}
		columns = n
	}

	writeJSON(w, http.StatusOK, matrixResponse{
		GarmentCost: cost,
		Matrix:      pricing.BuildMatrixData(t, cost, columns),
		Health:      pricing.CalculateTemplateHealth(t, cost),
	})
}

func (s *server) handleTemplateHealth(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.ScreenPrint(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cost, err := garmentCostParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pricing.CalculateTemplateHealth(t, cost))
}

// handleTemplateDiff previews how a proposed edit would move prices and
// margins. Nothing is saved.
func (s *server) handleTemplateDiff(w http.ResponseWriter, r *http.Request) {
	original, err := s.templates.ScreenPrint(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var proposed pricing.Template
	if err := decodeJSON(w, r, &proposed); err != nil {
		s.writeError(w, r, err)
		return
	}
	if proposed.ID == "" {
		proposed.ID = original.ID
	}
	if err := proposed.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pricing.CalculateDiff(original, proposed))
}

func (s *server) handleDTFTemplateHealth(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.DTF(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtf.CalculateTemplateHealth(t))
}

func (s *server) handlePriceScreenPrint(w http.ResponseWriter, r *http.Request) {
	var req screenPrintPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	lq, err := s.quotes.PriceScreenPrint(r.Context(), req.TemplateID, req.ScreenPrintLine)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lq)
}

func (s *server) handlePriceDTF(w http.ResponseWriter, r *http.Request) {
	var req dtfPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	dq, err := s.quotes.PriceDTF(r.Context(), req.TemplateID, req.DTFOrder)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dq)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.quotes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

// handleQuoteCreate stores a draft. With ?preview=true the draft is priced
// and returned without saving.
func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var draft quote.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		s.writeError(w, r, err)
		return
	}

	if preview, _ := strconv.ParseBool(r.URL.Query().Get("preview")); preview {
		p, totals, err := s.quotes.Price(r.Context(), draft)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, quoteResponse{Pricing: p, Totals: totals})
		return
	}

	q, err := s.quotes.Save(r.Context(), draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/quotes/"+q.ID)
	writeJSON(w, http.StatusCreated, q)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := quote.WriteText(w, q); err != nil {
		s.log.Error("write quote text", zap.String("quote_id", q.ID), zap.Error(err))
	}
}

// garmentCostParam reads ?garmentCost=, defaulting to the reference cost
// used for template diffs.
func garmentCostParam(r *http.Request) (decimal.Decimal, error) {
	raw := r.URL.Query().Get("garmentCost")
	if raw == "" {
		return pricing.DiffReferenceGarmentCost, nil
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil || cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: garmentCost must be a non-negative number", errBadRequest)
	}
	return cost, nil
}

package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/printshop/internal/catalog"
	"github.com/Simplici0/printshop/internal/dtf"
	"github.com/Simplici0/printshop/internal/gangsheet"
	"github.com/Simplici0/printshop/internal/pricing"
	"github.com/Simplici0/printshop/internal/quote"
	"github.com/Simplici0/printshop/internal/templates"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a 500 without details.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, catalog.ErrGarmentNotFound),
		errors.Is(err, quote.ErrQuoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, quote.ErrInvalidLine),
		errors.Is(err, quote.ErrEmptyDraft),
		errors.Is(err, quote.ErrUnknownKind),
		errors.Is(err, gangsheet.ErrDesignExceedsSheetWidth),
		errors.Is(err, gangsheet.ErrDesignExceedsSheetLength),
		errors.Is(err, gangsheet.ErrInvalidDesign),
		errors.Is(err, gangsheet.ErrUnknownMode),
		isTemplateInvalid(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func isTemplateInvalid(err error) bool {
	for _, target := range []error{
		pricing.ErrTierOrder,
		pricing.ErrTierGap,
		pricing.ErrTierRange,
		pricing.ErrUnboundedTierNotLast,
		pricing.ErrBasePriceLength,
		pricing.ErrColorCount,
		pricing.ErrMissingTemplateID,
		pricing.ErrManualCostMissing,
		pricing.ErrNegativeManualCost,
		pricing.ErrUnknownCostSource,
		dtf.ErrMissingTemplateID,
		dtf.ErrSheetDimensions,
		dtf.ErrMixedRollWidth,
		dtf.ErrDuplicateLength,
		dtf.ErrNegativePrice,
		dtf.ErrFilmMultiplier,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/printshop/internal/catalog"
	"github.com/Simplici0/printshop/internal/quote"
	"github.com/Simplici0/printshop/internal/templates"
)

type server struct {
	log       *zap.Logger
	db        *sql.DB
	templates *templates.Registry
	catalog   *catalog.Repository
	quotes    *quote.Service
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Get("/garments", s.handleGarmentsList)

	r.Get("/templates", s.handleTemplatesList)
	r.Get("/templates/{id}", s.handleTemplateGet)
	r.Get("/templates/{id}/matrix", s.handleTemplateMatrix)
	r.Get("/templates/{id}/health", s.handleTemplateHealth)
	r.Post("/templates/{id}/diff", s.handleTemplateDiff)
	r.Get("/dtf-templates/{id}", s.handleDTFTemplateGet)
	r.Get("/dtf-templates/{id}/health", s.handleDTFTemplateHealth)

	r.Post("/price/screen-print", s.handlePriceScreenPrint)
	r.Post("/price/dtf", s.handlePriceDTF)

	r.Get("/quotes", s.handleQuotesList)
	r.Post("/quotes", s.handleQuoteCreate)
	r.Get("/quotes/{id}", s.handleQuoteGet)
	r.Get("/quotes/{id}/text", s.handleQuoteText)

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

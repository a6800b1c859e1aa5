package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/printshop/internal/catalog"
	"github.com/Simplici0/printshop/internal/config"
	"github.com/Simplici0/printshop/internal/db"
	"github.com/Simplici0/printshop/internal/logger"
	"github.com/Simplici0/printshop/internal/migrations"
	"github.com/Simplici0/printshop/internal/quote"
	"github.com/Simplici0/printshop/internal/seed"
	"github.com/Simplici0/printshop/internal/templates"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	for _, warning := range cfg.Warnings {
		log.Warn("config value ignored", zap.String("reason", warning))
	}

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	applied, err := migrations.Up(ctx, database)
	if err != nil {
		log.Fatal("failed to run database migrations", zap.Error(err))
	}
	log.Info("database ready", zap.String("path", cfg.DBPath), zap.Int("migrations_applied", applied))

	stats, err := seed.Run(ctx, database)
	if err != nil {
		log.Fatal("failed to seed garment catalog", zap.Error(err))
	}
	log.Info("garment catalog seeded", zap.Int("inserts", stats.Inserts))

	registry, err := templates.Load(cfg.TemplatesPath)
	if err != nil {
		log.Fatal("failed to load pricing templates", zap.String("path", cfg.TemplatesPath), zap.Error(err))
	}
	screenPrint, dtfCount := registry.Counts()
	log.Info("pricing templates loaded", zap.Int("screen_print", screenPrint), zap.Int("dtf", dtfCount))

	garments := catalog.NewRepository(database)
	quotes := quote.NewService(garments, registry, quote.NewSQLiteStore(database), log, quote.Options{
		TaxPercent:      cfg.TaxPercent,
		GangSheetMargin: cfg.GangSheetMargin,
	})

	srv := &server{
		log:       log,
		db:        database,
		templates: registry,
		catalog:   garments,
		quotes:    quotes,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

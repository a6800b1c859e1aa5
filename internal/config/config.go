package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultAppEnv        = "development"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultTemplatesPath = "./templates.json"
	defaultTaxPercent    = "0"
	defaultGangMargin    = 0.5
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv          string
	Port            string
	DBPath          string
	TemplatesPath   string
	TaxPercent      decimal.Decimal
	GangSheetMargin float64
	Logger          LoggerConfig

	// Warnings collects values that were rejected in favour of a default.
	// They are reported once a logger exists.
	Warnings []string
}

type LoggerConfig struct {
	Level       string
	Encoding    string
	Development bool
}

// IsDev reports whether the server runs in a local development environment.
func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Load reads ./.env when present, then environment variables.
func Load() Config {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. Variables already set in the
// environment win over the file; a missing file is not an error.
func LoadFile(path string) Config {
	// Best-effort: production should inject real environment variables.
	_ = godotenv.Load(path)

	cfg := Config{
		AppEnv:        getEnv("APP_ENV", defaultAppEnv),
		Port:          getEnv("PORT", defaultPort),
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		TemplatesPath: getEnv("TEMPLATES_PATH", defaultTemplatesPath),
	}

	cfg.TaxPercent = getEnvDecimal("TAX_PERCENT", decimal.RequireFromString(defaultTaxPercent), &cfg.Warnings)
	if cfg.TaxPercent.IsNegative() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("TAX_PERCENT %s is negative, using %s", cfg.TaxPercent, defaultTaxPercent))
		cfg.TaxPercent = decimal.RequireFromString(defaultTaxPercent)
	}

	cfg.GangSheetMargin = getEnvFloat("GANG_SHEET_MARGIN", defaultGangMargin, &cfg.Warnings)
	if cfg.GangSheetMargin < 0 {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("GANG_SHEET_MARGIN %v is negative, using %v", cfg.GangSheetMargin, defaultGangMargin))
		cfg.GangSheetMargin = defaultGangMargin
	}

	dev := cfg.IsDev()
	cfg.Logger = LoggerConfig{
		Level:       getEnv("LOG_LEVEL", pick(dev, "debug", "info")),
		Encoding:    getEnv("LOG_ENCODING", pick(dev, "console", "json")),
		Development: dev,
	}

	return cfg
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64, warnings *[]string) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%s=%q is not a number, using %v", key, value, fallback))
		return fallback
	}
	return f
}

func getEnvDecimal(key string, fallback decimal.Decimal, warnings *[]string) decimal.Decimal {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%s=%q is not a number, using %s", key, value, fallback))
		return fallback
	}
	return d
}

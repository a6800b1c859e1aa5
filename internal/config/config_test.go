package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "PORT", "DB_PATH", "TEMPLATES_PATH", "TAX_PERCENT",
	"LOG_LEVEL", "LOG_ENCODING", "GANG_SHEET_MARGIN",
}

// clearEnv unsets every config key for the test and restores it afterwards,
// so values written by godotenv do not leak between tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./dev.db", cfg.DBPath)
	assert.Equal(t, "./templates.json", cfg.TemplatesPath)
	assert.True(t, cfg.TaxPercent.IsZero())
	assert.Equal(t, 0.5, cfg.GangSheetMargin)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Encoding)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFile_ReadsDotEnvAndIgnoresNoise(t *testing.T) {
	clearEnv(t)
	path := writeDotEnv(t, `
# comment

PORT=9090
export DB_PATH=/var/lib/printshop.db
TAX_PERCENT="8.25"
TEMPLATES_PATH='/etc/printshop/templates.json'
APP_ENV=production
`)

	cfg := LoadFile(path)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/var/lib/printshop.db", cfg.DBPath)
	assert.Equal(t, "/etc/printshop/templates.json", cfg.TemplatesPath)
	assert.Equal(t, "8.25", cfg.TaxPercent.String())
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
}

func TestLoadFile_DoesNotOverwriteExistingEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	path := writeDotEnv(t, "PORT=9090\n")

	cfg := LoadFile(path)

	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadFile_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TAX_PERCENT", "abc")
	t.Setenv("GANG_SHEET_MARGIN", "-1")

	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	assert.True(t, cfg.TaxPercent.IsZero())
	assert.Equal(t, 0.5, cfg.GangSheetMargin)
	assert.Len(t, cfg.Warnings, 2)
}

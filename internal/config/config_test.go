package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(credFile, []byte("{}"), 0600))

	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "bad orphan policy",
			mutate:      func(c *Config) { c.OrphanPolicy = "keep" },
			errorString: `invalid orphan policy "keep"`,
		},
		{
			name:        "bad today",
			mutate:      func(c *Config) { c.Today = "19/10/2026" },
			errorString: "invalid PROYEK_TODAY",
		},
		{
			name:        "sheets without credentials",
			mutate:      func(c *Config) { c.Sheets.SpreadsheetID = "abc" },
			errorString: "PROYEK_SHEETS_CREDENTIALS_FILE or PROYEK_SHEETS_CREDENTIALS_JSON",
		},
		{
			name: "sheets with missing credentials file",
			mutate: func(c *Config) {
				c.Sheets.SpreadsheetID = "abc"
				c.Sheets.CredentialsFile = "/nonexistent/sa.json"
			},
			errorString: "sheets credentials file does not exist",
		},
		{
			name: "sheets with credentials file",
			mutate: func(c *Config) {
				c.Sheets.SpreadsheetID = "abc"
				c.Sheets.CredentialsFile = credFile
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "loud"
	cfg.HTTPAddr = ""
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
	assert.Contains(t, err.Error(), "HTTP address cannot be empty")
	assert.Contains(t, err.Error(), "database path cannot be empty")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "proyek.yaml")
	yaml := "db: /data/from-file.db\nlog_level: info\norphan_policy: cascade\nsheets:\n  spreadsheet_id: sheet-from-file\n"
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0600))

	t.Setenv("PROYEK_CONFIG", file)
	t.Setenv("PROYEK_LOG_LEVEL", "debug")
	t.Setenv("PROYEK_TODAY", "2026-10-19")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/from-file.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ledger.OrphanCascade, cfg.Orphans())
	assert.Equal(t, "sheet-from-file", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "Invoice", cfg.Sheets.SheetName, "defaults survive a partial file")
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), cfg.Clock()())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("PROYEK_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_OrphansFallsBackToDetach(t *testing.T) {
	cfg := Defaults()
	cfg.OrphanPolicy = ""
	assert.Equal(t, ledger.OrphanDetach, cfg.Orphans())
}

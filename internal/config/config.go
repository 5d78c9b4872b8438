package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath       string `yaml:"db"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	OrphanPolicy string `yaml:"orphan_policy"`
	HTTPAddr     string `yaml:"http_addr"`
	// Today pins the reporting date (YYYY-MM-DD) for reproducible output.
	Today  string       `yaml:"today"`
	Sheets SheetsConfig `yaml:"sheets"`
}

// SheetsConfig enables report export to Google Sheets when SpreadsheetID is set.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet"`
	CredentialsFile string `yaml:"credentials_file"`
	CredentialsJSON string `yaml:"credentials_json"`
}

func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != ""
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	dbPath := filepath.Join(".proyek", "proyek.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".proyek", "proyek.db")
	}
	return &Config{
		DBPath:       dbPath,
		LogLevel:     "warn",
		LogFormat:    "text",
		OrphanPolicy: string(ledger.OrphanDetach),
		HTTPAddr:     ":8080",
		Sheets:       SheetsConfig{SheetName: "Invoice"},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// PROYEK_CONFIG, and PROYEK_* environment variables, in increasing priority.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Defaults()
	if path := os.Getenv("PROYEK_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBPath = getEnv("PROYEK_DB", c.DBPath)
	c.LogLevel = getEnv("PROYEK_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("PROYEK_LOG_FORMAT", c.LogFormat)
	c.OrphanPolicy = getEnv("PROYEK_ORPHAN_POLICY", c.OrphanPolicy)
	c.HTTPAddr = getEnv("PROYEK_HTTP_ADDR", c.HTTPAddr)
	c.Today = getEnv("PROYEK_TODAY", c.Today)
	c.Sheets.SpreadsheetID = getEnv("PROYEK_SHEETS_SPREADSHEET_ID", c.Sheets.SpreadsheetID)
	c.Sheets.SheetName = getEnv("PROYEK_SHEETS_SHEET", c.Sheets.SheetName)
	c.Sheets.CredentialsFile = getEnv("PROYEK_SHEETS_CREDENTIALS_FILE", c.Sheets.CredentialsFile)
	c.Sheets.CredentialsJSON = getEnv("PROYEK_SHEETS_CREDENTIALS_JSON", c.Sheets.CredentialsJSON)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}
	if _, err := ledger.ParseOrphanPolicy(c.OrphanPolicy); err != nil {
		problems = append(problems, err.Error())
	}
	if c.HTTPAddr == "" {
		problems = append(problems, "HTTP address cannot be empty")
	}
	if c.Today != "" {
		if _, err := domain.ParseDate(c.Today); err != nil {
			problems = append(problems, fmt.Sprintf("invalid PROYEK_TODAY: %v", err))
		}
	}

	if c.Sheets.Enabled() {
		if c.Sheets.SheetName == "" {
			problems = append(problems, "sheet name is required when a spreadsheet id is set")
		}
		if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
			problems = append(problems, "either PROYEK_SHEETS_CREDENTIALS_FILE or PROYEK_SHEETS_CREDENTIALS_JSON must be provided for sheets export")
		}
		if c.Sheets.CredentialsFile != "" {
			if _, err := os.Stat(c.Sheets.CredentialsFile); os.IsNotExist(err) {
				problems = append(problems, fmt.Sprintf("sheets credentials file does not exist: %s", c.Sheets.CredentialsFile))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Orphans returns the configured orphan policy. Call Validate first.
func (c *Config) Orphans() ledger.OrphanPolicy {
	p, err := ledger.ParseOrphanPolicy(c.OrphanPolicy)
	if err != nil {
		return ledger.OrphanDetach
	}
	return p
}

// Clock returns the function every date-sensitive view uses for "today".
func (c *Config) Clock() func() time.Time {
	if c.Today != "" {
		if t, err := domain.ParseDate(c.Today); err == nil {
			return func() time.Time { return t }
		}
	}
	return func() time.Time { return time.Now().UTC() }
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

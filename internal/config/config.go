package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Notify    NotifyConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds token issuance settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

// ReportingConfig holds the daily roll-up scheduler settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// SheetsConfig configures the optional Google Sheets report sync. The sync
// is disabled when either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// NotifyConfig configures the optional report webhook push. Disabled when
// the URL is empty.
type NotifyConfig struct {
	WebhookURL string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTLHours, err := strconv.Atoi(getenvWithDefault("JWT_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL_HOURS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmtrack"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  time.Duration(tokenTTLHours) * time.Hour,
			Issuer:    getenvWithDefault("JWT_ISSUER", "farmtrack"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("REPORT_WEBHOOK_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	// Sheets sync requires both fields or neither.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	return nil
}

// SheetsEnabled reports whether the Google Sheets report sync is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/settings"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	JWT     JWTConfig
	Storage StorageConfig
	SMTP    SMTPConfig
	Action  ActionConfig
	Table   TableConfig
	CORS    CORSConfig
	Work    settings.Settings
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	BaseURL  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	// AcceptableSkew tolerates clock drift when checking exp and nbf.
	AcceptableSkew time.Duration
}

// StorageConfig locates exported spreadsheets on disk
type StorageConfig struct {
	BasePath string
	BaseURL  string
	// ExportRetention is how long generated spreadsheets are kept.
	ExportRetention time.Duration
}

// SMTPConfig holds outgoing mail settings. An empty Host disables email.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// ActionConfig tunes the confirmation-gated action dispatcher
type ActionConfig struct {
	ConfirmationTTL time.Duration
	Workers         int
	SweepInterval   time.Duration
}

type TableConfig struct {
	DefaultPageSize int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is optional; the process environment wins either way
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		BaseURL:  getEnv("APP_BASE_URL", fmt.Sprintf("http://localhost:%d", appPort)),
	}

	// JWT configuration
	skew, err := time.ParseDuration(getEnv("JWT_ACCEPTABLE_SKEW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCEPTABLE_SKEW: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		AcceptableSkew:   skew,
	}

	// Storage configuration
	retention, err := time.ParseDuration(getEnv("EXPORT_RETENTION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_RETENTION: %w", err)
	}

	config.Storage = StorageConfig{
		BasePath:        getEnv("STORAGE_PATH", "./storage"),
		BaseURL:         getEnv("STORAGE_BASE_URL", config.App.BaseURL+"/exports"),
		ExportRetention: retention,
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@company.com"),
		FromName: getEnv("SMTP_FROM_NAME", "Timesheet Admin"),
	}

	// Action dispatcher configuration
	ttl, err := time.ParseDuration(getEnv("ACTION_CONFIRMATION_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTION_CONFIRMATION_TTL: %w", err)
	}
	sweep, err := time.ParseDuration(getEnv("ACTION_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTION_SWEEP_INTERVAL: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("ACTION_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTION_WORKERS: %w", err)
	}

	config.Action = ActionConfig{
		ConfirmationTTL: ttl,
		Workers:         workers,
		SweepInterval:   sweep,
	}

	pageSize, err := strconv.Atoi(getEnv("TABLE_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid TABLE_PAGE_SIZE: %w", err)
	}
	config.Table = TableConfig{DefaultPageSize: pageSize}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Work policy
	work := settings.Default()
	if work.WorkHoursPerDay, err = getEnvFloat("WORK_HOURS_PER_DAY", work.WorkHoursPerDay); err != nil {
		return nil, err
	}
	if work.WorkHoursPerWeek, err = getEnvFloat("WORK_HOURS_PER_WEEK", work.WorkHoursPerWeek); err != nil {
		return nil, err
	}
	work.CompanyName = getEnv("COMPANY_NAME", work.CompanyName)
	work.TimeZone = getEnv("TIMEZONE", work.TimeZone)
	work.WorkStartTime = getEnv("WORK_START_TIME", work.WorkStartTime)
	config.Work = work

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	slog.Info("Configuration loaded", "env", config.App.Env, "port", config.App.Port, "smtp_enabled", config.SMTP.Host != "")
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Action.ConfirmationTTL <= 0 {
		return fmt.Errorf("ACTION_CONFIRMATION_TTL must be positive")
	}
	if c.Action.SweepInterval <= 0 {
		return fmt.Errorf("ACTION_SWEEP_INTERVAL must be positive")
	}
	if c.Action.Workers < 1 {
		return fmt.Errorf("ACTION_WORKERS must be at least 1")
	}
	if c.Table.DefaultPageSize < 1 || c.Table.DefaultPageSize > 100 {
		return fmt.Errorf("TABLE_PAGE_SIZE must be between 1 and 100")
	}
	if c.Storage.BasePath == "" {
		return fmt.Errorf("STORAGE_PATH is required")
	}
	if c.Storage.ExportRetention <= 0 {
		return fmt.Errorf("EXPORT_RETENTION must be positive")
	}
	if err := c.Work.Validate(); err != nil {
		return fmt.Errorf("invalid work settings: %w", err)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto slog, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/madwell/signin-backend-go/internal/pkg/validator"
)

type Config struct {
	App    AppConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Roster RosterConfig
	PTO    PTOConfig
	Engine EngineConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
	UploadMaxBytes     int64
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AuthConfig holds the dashboard password gate
type AuthConfig struct {
	PasswordHash string
}

type RosterConfig struct {
	URL             string
	RefreshInterval time.Duration
}

// PTOConfig holds the HR leave-calendar endpoint settings
type PTOConfig struct {
	URL              string
	AuthMode         string
	Username         string
	Password         string
	ClientID         string
	ClientSecret     string
	TokenURL         string
	Scopes           []string
	Timeout          time.Duration
	MaxRetries       int
	ApprovedStatuses []string
	Required         bool
	RefreshInterval  time.Duration
}

type EngineConfig struct {
	Workers         int
	UnmatchedPolicy string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Warn("No .env file found, using environment variables only")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	uploadMaxBytes, err := strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_BYTES: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "America/New_York"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		UploadMaxBytes:     uploadMaxBytes,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	config.Auth = AuthConfig{
		PasswordHash: getEnv("DASHBOARD_PASSWORD_HASH", ""),
	}

	// Each source may override the shared refresh interval.
	refreshDefault := getEnv("SOURCE_REFRESH_INTERVAL", "10m")
	rosterRefresh, err := time.ParseDuration(getEnv("ROSTER_REFRESH_INTERVAL", refreshDefault))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_REFRESH_INTERVAL: %w", err)
	}
	ptoRefresh, err := time.ParseDuration(getEnv("PTO_REFRESH_INTERVAL", refreshDefault))
	if err != nil {
		return nil, fmt.Errorf("invalid PTO_REFRESH_INTERVAL: %w", err)
	}

	config.Roster = RosterConfig{
		URL:             getEnv("ROSTER_URL", ""),
		RefreshInterval: rosterRefresh,
	}

	// PTO calendar configuration
	ptoTimeout, err := time.ParseDuration(getEnv("PTO_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PTO_TIMEOUT: %w", err)
	}
	ptoMaxRetries, err := strconv.Atoi(getEnv("PTO_MAX_RETRIES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PTO_MAX_RETRIES: %w", err)
	}
	ptoRequired, err := strconv.ParseBool(getEnv("PTO_REQUIRED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PTO_REQUIRED: %w", err)
	}

	config.PTO = PTOConfig{
		URL:              getEnv("PTO_URL", ""),
		AuthMode:         strings.ToLower(getEnv("PTO_AUTH_MODE", "basic")),
		Username:         getEnv("PTO_USERNAME", ""),
		Password:         getEnv("PTO_PASSWORD", ""),
		ClientID:         getEnv("PTO_CLIENT_ID", ""),
		ClientSecret:     getEnv("PTO_CLIENT_SECRET", ""),
		TokenURL:         getEnv("PTO_TOKEN_URL", ""),
		Scopes:           getEnvSlice("PTO_SCOPES", ""),
		Timeout:          ptoTimeout,
		MaxRetries:       ptoMaxRetries,
		ApprovedStatuses: getEnvSlice("PTO_APPROVED_STATUSES", ""),
		Required:         ptoRequired,
		RefreshInterval:  ptoRefresh,
	}

	// Engine configuration
	workers, err := strconv.Atoi(getEnv("ENGINE_WORKERS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_WORKERS: %w", err)
	}

	config.Engine = EngineConfig{
		Workers:         workers,
		UnmatchedPolicy: strings.ToLower(getEnv("UNMATCHED_POLICY", "ignore")),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Auth.PasswordHash == "" {
		return fmt.Errorf("DASHBOARD_PASSWORD_HASH is required")
	}
	if c.Roster.URL == "" {
		return fmt.Errorf("ROSTER_URL is required")
	}
	if c.PTO.URL == "" {
		return fmt.Errorf("PTO_URL is required")
	}
	if !validator.IsValidTimezone(c.App.Timezone) {
		return fmt.Errorf("APP_TIMEZONE %q is not a valid IANA timezone", c.App.Timezone)
	}
	if c.App.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Roster.RefreshInterval <= 0 {
		return fmt.Errorf("ROSTER_REFRESH_INTERVAL must be positive")
	}
	if c.PTO.RefreshInterval <= 0 {
		return fmt.Errorf("PTO_REFRESH_INTERVAL must be positive")
	}

	switch c.PTO.AuthMode {
	case "basic":
	case "oauth2":
		if c.PTO.ClientID == "" || c.PTO.ClientSecret == "" || c.PTO.TokenURL == "" {
			return fmt.Errorf("PTO_CLIENT_ID, PTO_CLIENT_SECRET and PTO_TOKEN_URL are required when PTO_AUTH_MODE is oauth2")
		}
	default:
		return fmt.Errorf("PTO_AUTH_MODE must be basic or oauth2")
	}
	if c.PTO.MaxRetries < 0 {
		return fmt.Errorf("PTO_MAX_RETRIES must not be negative")
	}

	if c.Engine.Workers < 0 {
		return fmt.Errorf("ENGINE_WORKERS must not be negative")
	}
	if !validator.IsInSlice(c.Engine.UnmatchedPolicy, []string{"ignore", "report"}) {
		return fmt.Errorf("UNMATCHED_POLICY must be ignore or report")
	}
	return nil
}

// Location returns the timezone sign-in timestamps and leave dates are read in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

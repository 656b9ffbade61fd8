package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Google OAuth configuration
	GoogleOAuth GoogleOAuthConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Log LogConfig

	// Creator program defaults
	Creator CreatorConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host         string        `env:"DB_HOST" env-default:"localhost"`
	Port         string        `env:"DB_PORT" env-default:"5432"`
	User         string        `env:"DB_USER" env-default:"postgres"`
	Password     string        `env:"DB_PASSWORD"`
	Name         string        `env:"DB_NAME" env-default:"postgres"`
	SSLMode      string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxConns     int32         `env:"DB_MAX_CONNS" env-default:"5"`
	MinConns     int32         `env:"DB_MIN_CONNS" env-default:"0"`
	MaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" env-default:"1h"`
	ConnTimeout  time.Duration `env:"DB_CONN_TIMEOUT" env-default:"10s"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" env-default:"30s"`
	AutoMigrate  bool          `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret         string        `env:"JWT_SECRET"`
	Issuer         string        `env:"JWT_ISSUER" env-default:"go2gether"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" env-default:"168h"` // 7 days
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID            string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret        string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL         string `env:"GOOGLE_REDIRECT_URL" env-default:"http://localhost:8080/api/auth/google/callback"`
	FrontendCallbackURL string `env:"GOOGLE_FRONTEND_CALLBACK_URL" env-default:"http://localhost:5173/auth/callback"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" env-default:"*"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"` // json | text
}

// CreatorConfig holds defaults applied to new creator profiles
type CreatorConfig struct {
	DefaultCommissionRate float64 `env:"CREATOR_DEFAULT_COMMISSION_RATE" env-default:"0.1"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not load .env file", slog.String("error", err.Error()))
		}
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	if r := c.Creator.DefaultCommissionRate; r < 0 || r > 1 {
		return fmt.Errorf("CREATOR_DEFAULT_COMMISSION_RATE must be within [0, 1], got %v", r)
	}

	if !c.IsGoogleOAuthConfigured() {
		slog.Warn("Google OAuth credentials not configured, Google login will not work")
	}

	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsGoogleOAuthConfigured checks if Google OAuth is properly configured
func (c *Config) IsGoogleOAuthConfigured() bool {
	return c.GoogleOAuth.ClientID != "" && c.GoogleOAuth.ClientSecret != ""
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	ML       MLConfig
	APIKey   APIKeyConfig
	CORS     CORSConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

// AuthConfig holds token signing and gate settings
type AuthConfig struct {
	SecretKey string
	// TokenTTL is the bearer-token lifetime. Defaults to 60 minutes, or 10
	// minutes under the test profile.
	TokenTTL time.Duration
	// BypassEnabled disables the auth gate entirely (test profile only).
	BypassEnabled bool
	BcryptCost    int
}

// MLConfig holds the external diagnosis service settings
type MLConfig struct {
	URL     string
	Timeout time.Duration
}

// APIKeyConfig holds access-key allocation policy
type APIKeyConfig struct {
	TTL         time.Duration
	UsageBudget int
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	testing := envBool("TESTING", false)

	defaultTTL := 60
	if testing {
		defaultTTL = 10
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         envString("SERVER_HOST", "0.0.0.0"),
			Port:         envInt("SERVER_PORT", 8080),
			ReadTimeout:  envDuration("SERVER_READ_TIMEOUT", 60*time.Second),
			WriteTimeout: envDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			User:     envString("DB_USER", "postgres"),
			Password: envString("DB_PASSWORD", ""),
			DBName:   envString("DB_NAME", "skin_diagnosis"),
			SSLMode:  envString("DB_SSLMODE", "disable"),
			LogLevel: envString("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			SecretKey:     envString("SECRET_KEY", ""),
			TokenTTL:      time.Duration(envInt("ACCESS_TOKEN_EXPIRE_MINUTES", defaultTTL)) * time.Minute,
			BypassEnabled: testing,
			BcryptCost:    envInt("BCRYPT_COST", 12),
		},
		ML: MLConfig{
			URL:     envString("ML_API_URL", "http://localhost:8000/predict"),
			Timeout: envDuration("ML_API_TIMEOUT", 30*time.Second),
		},
		APIKey: APIKeyConfig{
			TTL:         envDuration("API_KEY_TTL", 30*24*time.Hour),
			UsageBudget: envInt("API_KEY_USAGE_BUDGET", 1000),
		},
		CORS: CORSConfig{
			AllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: envList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: envList("CORS_ALLOWED_HEADERS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: envBool("METRICS_ENABLED", true),
		},
	}

	return cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.ML.URL == "" {
		return fmt.Errorf("ML_API_URL is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

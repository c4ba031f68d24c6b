package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	LogLevel   string
	Port       uint16
	CatalogDir string
	Email      EmailConfig
}

// EmailConfig holds the outbound mail relay settings for the submission
// sink. Username and Password may be empty; the sink reports that as a
// failed relay verification at submit time rather than refusing to start.
type EmailConfig struct {
	Host     string
	Port     uint16
	Username string
	Password string
	From     string // sender address for submission notifications
	To       string // operator recipient for order/wishlist exports
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:        getEnv("ENV", "dev"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Port:       getEnvInt("PORT", 3000),
		CatalogDir: getEnv("CATALOG_DIR", "./data"),
		Email: EmailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 465),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("EMAIL_FROM", "noreply@pantrylane.local"),
			To:       getEnv("EMAIL_TO", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	// Submissions go nowhere without a recipient; refuse to start in prod.
	if cfg.Env == "prod" && cfg.Email.To == "" {
		return nil, fmt.Errorf("EMAIL_TO must be set in production environment")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

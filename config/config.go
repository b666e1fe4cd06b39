package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost      string
	HTTPPort      string
	MySQLDSN      string
	JWTSecret     string
	ResetTokenTTL time.Duration
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	AppBaseURL    string
	LogLevel      string
	LogFormat     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return nil, errors.New("SMTP_HOST environment variable is required")
	}

	smtpUsername := os.Getenv("SMTP_USERNAME")
	if smtpUsername == "" {
		return nil, errors.New("SMTP_USERNAME environment variable is required")
	}

	smtpPassword := os.Getenv("SMTP_PASSWORD")
	if smtpPassword == "" {
		return nil, errors.New("SMTP_PASSWORD environment variable is required")
	}

	appBaseURL := os.Getenv("APP_BASE_URL")
	if appBaseURL == "" {
		return nil, errors.New("APP_BASE_URL environment variable is required")
	}

	return &Config{
		HTTPHost:      getEnv("HTTP_HOST", ""),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		MySQLDSN:      mysqlDSN,
		JWTSecret:     jwtSecret,
		ResetTokenTTL: getDurationEnv("RESET_TOKEN_TTL", 30*time.Minute),
		SMTPHost:      smtpHost,
		SMTPPort:      getIntEnv("SMTP_PORT", 465),
		SMTPUsername:  smtpUsername,
		SMTPPassword:  smtpPassword,
		SMTPFrom:      getEnv("SMTP_FROM", smtpUsername),
		AppBaseURL:    appBaseURL,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

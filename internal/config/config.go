package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Mailer   MailerConfig
	Payroll  PayrollConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MailerConfig holds the notification gateway configuration
type MailerConfig struct {
	Mode     string // "dev" logs instead of sending, "production" calls the API
	APIURL   string
	Username string
	Password string
	FromAddr string
}

// PayrollConfig holds the pay-computation constants. NetFactor is the flat
// simulated-charges multiplier applied to salary components (never to km
// reimbursement). Night hours are those in [NightStartHour, 24) U [0, NightEndHour).
type PayrollConfig struct {
	NightStartHour int
	NightEndHour   int
	NetFactor      float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvInt("DB_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvInt("DB_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", ""),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", ""),
			AccessTokenExpiry:  getEnvDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			RefreshTokenExpiry: getEnvDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGIN", "*")},
		},
		Mailer: MailerConfig{
			Mode:     getEnv("MAILER_MODE", "dev"),
			APIURL:   getEnv("MAILER_API_URL", ""),
			Username: getEnv("MAILER_USERNAME", ""),
			Password: getEnv("MAILER_PASSWORD", ""),
			FromAddr: getEnv("MAILER_FROM", "no-reply@merchlink.example"),
		},
		Payroll: PayrollConfig{
			NightStartHour: getEnvInt("PAYROLL_NIGHT_START_HOUR", 21),
			NightEndHour:   getEnvInt("PAYROLL_NIGHT_END_HOUR", 6),
			NetFactor:      getEnvFloat("PAYROLL_NET_FACTOR", 0.78),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.RefreshSecret == "" {
		c.JWT.RefreshSecret = c.JWT.Secret
	}
	if c.Payroll.NightStartHour < 0 || c.Payroll.NightStartHour > 23 {
		return fmt.Errorf("PAYROLL_NIGHT_START_HOUR must be in [0,23]")
	}
	if c.Payroll.NightEndHour < 0 || c.Payroll.NightEndHour > 23 {
		return fmt.Errorf("PAYROLL_NIGHT_END_HOUR must be in [0,23]")
	}
	if c.Payroll.NetFactor <= 0 || c.Payroll.NetFactor > 1 {
		return fmt.Errorf("PAYROLL_NET_FACTOR must be in (0,1]")
	}
	if c.Mailer.Mode == "production" && c.Mailer.APIURL == "" {
		return fmt.Errorf("MAILER_API_URL is required in production mailer mode")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("Invalid float for %s, using default %f", key, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}

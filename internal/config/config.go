package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Mpesa    MpesaConfig
	Radio    RadioConfig
	Seed     SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	TTLMinutes int
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Sender   string
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	PublicURL    string
}

// MpesaConfig holds Safaricom Daraja API configuration
type MpesaConfig struct {
	BaseURL     string
	ConsumerKey string
	Secret      string
	Shortcode   string
	Passkey     string
	CallbackURL string
}

// RadioConfig holds the community radio status endpoint
type RadioConfig struct {
	StatusURL string
}

// SeedConfig holds the initial super-admin account
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	ttlMinutes, _ := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "washlab"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "default_secret"),
			TTLMinutes: ttlMinutes,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     smtpPort,
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "no-reply@washlab.org"),
			Sender:   getEnv("SMTP_SENDER", "WASHLAB"),
		},
		Storage: StorageConfig{
			Region:       getEnv("S3_REGION", "eu-west-1"),
			Bucket:       getEnv("S3_BUCKET", ""),
			AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("S3_SECRET_KEY", ""),
			BaseEndpoint: getEnv("S3_ENDPOINT", ""),
			PublicURL:    getEnv("S3_PUBLIC_URL", ""),
		},
		Mpesa: MpesaConfig{
			BaseURL:     getEnv("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
			ConsumerKey: getEnv("MPESA_CONSUMER_KEY", ""),
			Secret:      getEnv("MPESA_CONSUMER_SECRET", ""),
			Shortcode:   getEnv("MPESA_SHORTCODE", ""),
			Passkey:     getEnv("MPESA_PASSKEY", ""),
			CallbackURL: getEnv("MPESA_CALLBACK_URL", ""),
		},
		Radio: RadioConfig{
			StatusURL: getEnv("RADIO_STATUS_URL", ""),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.washlab.org"
	}
	return origins
}

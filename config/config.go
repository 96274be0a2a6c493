package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	WhatsApp WhatsAppConfig
	DB       DBConfig
	Telegram TelegramConfig
	Delivery DeliveryConfig
}

type ServerConfig struct {
	Port         string
	APISecretKey string // bearer token required by POST /api/send
	ImagesDir    string
}

type WhatsAppConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string // empty disables the notification log
	Port     int
	User     string
	Password string
	Database string
}

// Enabled reports whether the notification log should be written to Postgres.
func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

type TelegramConfig struct {
	MessageToken string // token for sending order notifications to staff
	AdminChatID  int64
}

// Enabled reports whether staff notifications are configured.
func (c TelegramConfig) Enabled() bool {
	return c.MessageToken != "" && c.AdminChatID != 0
}

type DeliveryConfig struct {
	Fee decimal.Decimal
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT: %w", err)
	}
	timeoutSec, err := strconv.Atoi(getEnv("WHATSAPP_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("WHATSAPP_TIMEOUT_SECONDS: %w", err)
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("WHATSAPP_TIMEOUT_SECONDS must be > 0")
	}
	fee, err := decimal.NewFromString(getEnv("DELIVERY_FEE", "3.99"))
	if err != nil {
		return nil, fmt.Errorf("DELIVERY_FEE: %w", err)
	}
	if fee.IsNegative() {
		return nil, fmt.Errorf("DELIVERY_FEE must be >= 0")
	}
	var adminID int64
	if v := os.Getenv("ADMIN_ID"); v != "" {
		adminID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_ID: %w", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			APISecretKey: getEnv("API_SECRET_KEY", ""),
			ImagesDir:    getEnv("IMAGES_DIR", "./public"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL: getEnv("WHATSAPP_API_BASE_URL", ""),
			APIKey:  getEnv("WHATSAPP_API_KEY", ""),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "sparkmeals"),
		},
		Telegram: TelegramConfig{
			MessageToken: getEnv("MESSAGE_TOKEN", ""),
			AdminChatID:  adminID,
		},
		Delivery: DeliveryConfig{
			Fee: fee,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

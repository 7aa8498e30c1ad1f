package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	ReportFeedKey    string        `env:"REPORT_FEED_CHANNEL" envDefault:"reports:changes"`
	ResourceCacheTTL time.Duration `env:"RESOURCE_CACHE_TTL" envDefault:"5m"`

	// Webhook Config (ретрансляция записей об оповещениях)
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// SMS Config
	SMSProvider      string        `env:"SMS_PROVIDER" envDefault:"log"`
	SMSGatewayURL    string        `env:"SMS_GATEWAY_URL"`
	SMSTimeout       time.Duration `env:"SMS_TIMEOUT" envDefault:"10s"`
	SMSRatePerSecond float64       `env:"SMS_RATE_PER_SECOND" envDefault:"5"`
	TwilioAccountSID string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string        `env:"TWILIO_PHONE_NUMBER"`
	TwilioBaseURL    string        `env:"TWILIO_BASE_URL" envDefault:"https://api.twilio.com"`

	// Overlay Config
	OverlayRefreshInterval time.Duration `env:"OVERLAY_REFRESH_INTERVAL" envDefault:"1m"`
	RiskDriftInterval      time.Duration `env:"RISK_DRIFT_INTERVAL" envDefault:"5s"`
	InitialRisk            float64       `env:"INITIAL_RISK" envDefault:"0.5"`

	// Landslide model
	LandslideSeed int64 `env:"LANDSLIDE_SEED" envDefault:"42"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// Поддерживаемые SMS-провайдеры
const (
	SMSProviderLog     = "log"
	SMSProviderGateway = "gateway"
	SMSProviderTwilio  = "twilio"
)

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DBMaxConns:             int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		ReportFeedKey:          getEnv("REPORT_FEED_CHANNEL", "reports:changes"),
		ResourceCacheTTL:       getEnvAsDuration("RESOURCE_CACHE_TTL", 5*time.Minute),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		SMSProvider:            strings.ToLower(getEnv("SMS_PROVIDER", SMSProviderLog)),
		SMSGatewayURL:          os.Getenv("SMS_GATEWAY_URL"),
		SMSTimeout:             getEnvAsDuration("SMS_TIMEOUT", 10*time.Second),
		SMSRatePerSecond:       getEnvAsFloat("SMS_RATE_PER_SECOND", 5),
		TwilioAccountSID:       os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:        os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:       os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioBaseURL:          getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
		OverlayRefreshInterval: getEnvAsDuration("OVERLAY_REFRESH_INTERVAL", time.Minute),
		RiskDriftInterval:      getEnvAsDuration("RISK_DRIFT_INTERVAL", 5*time.Second),
		InitialRisk:            getEnvAsFloat("INITIAL_RISK", 0.5),
		LandslideSeed:          int64(getEnvAsInt("LANDSLIDE_SEED", 42)),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры и согласованность настроек SMS
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	switch c.SMSProvider {
	case SMSProviderLog:
	case SMSProviderGateway:
		if c.SMSGatewayURL == "" {
			return fmt.Errorf("SMS_GATEWAY_URL is required for sms provider %q", c.SMSProvider)
		}
	case SMSProviderTwilio:
		if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.TwilioFromNumber == "" {
			return fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER are required for sms provider %q", c.SMSProvider)
		}
	default:
		return fmt.Errorf("unknown SMS_PROVIDER %q", c.SMSProvider)
	}

	if c.SMSRatePerSecond <= 0 {
		return fmt.Errorf("SMS_RATE_PER_SECOND must be positive, got %v", c.SMSRatePerSecond)
	}
	// time.NewTicker паникует на неположительном интервале
	if c.OverlayRefreshInterval <= 0 {
		return fmt.Errorf("OVERLAY_REFRESH_INTERVAL must be positive, got %v", c.OverlayRefreshInterval)
	}
	if c.RiskDriftInterval <= 0 {
		return fmt.Errorf("RISK_DRIFT_INTERVAL must be positive, got %v", c.RiskDriftInterval)
	}
	if c.InitialRisk < 0 || c.InitialRisk > 1 {
		return fmt.Errorf("INITIAL_RISK must be within [0,1], got %v", c.InitialRisk)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

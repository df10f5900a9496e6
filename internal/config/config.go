package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	MQTT       MQTTConfig
	OpenRouter OpenRouterConfig
}

type AppConfig struct {
	Port            string
	DefaultLanguage string // "en" or "ar"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string
}

type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Topic    string
	QoS      int
}

type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
	SiteName string
}

// Load reads configuration from environment variables, falling back to
// development defaults. OPENROUTER_API_KEY has no default; LLM-backed
// features are disabled when it is empty.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Port:            getEnv("HTTP_PORT", "5000"),
			DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "mediguard"),
			Password: getEnv("DB_PASSWORD", "mediguard"),
			DBName:   getEnv("DB_NAME", "mediguard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		},
		MQTT: MQTTConfig{
			Enabled:  getEnvAsBool("MQTT_ENABLED", false),
			Broker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
			ClientID: getEnv("MQTT_CLIENT_ID", "mediguard-backend"),
			Topic:    getEnv("MQTT_TOPIC", "mediguard/vitals/#"),
			QoS:      getEnvAsInt("MQTT_QOS", 1),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:   getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:  getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:    getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			Timeout:  getEnvAsDuration("OPENROUTER_TIMEOUT", 60*time.Second),
			SiteName: getEnv("OPENROUTER_SITE_NAME", "MediGuard"),
		},
	}
}

// DSN builds the Postgres connection string for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode, d.TimeZone,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

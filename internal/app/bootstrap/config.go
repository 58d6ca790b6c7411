package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int

	RedisURL     string
	KafkaBrokers []string
	EventTopic   string

	AdminPassword string
	SyncSecretKey string

	TelegramBotToken string
	BotAPIURL        string
	BotAPIKey        string

	BlobAPIURL         string
	BlobReadWriteToken string

	MaintenanceSweepInterval time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		RedisURL     string   `yaml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers"`
		EventTopic   string   `yaml:"event_topic"`
		BotAPIURL    string   `yaml:"bot_api_url"`
		BlobAPIURL   string   `yaml:"blob_api_url"`
	} `yaml:"dependencies"`
}

// LoadConfig layers defaults, the optional yaml file, then environment
// variables. Secrets only come from the environment.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                "marketplace-service",
		HTTPPort:                 8080,
		EventTopic:               "marketplace.events",
		MaintenanceSweepInterval: time.Minute,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.EventTopic != "" {
			cfg.EventTopic = f.Dependencies.EventTopic
		}
		if f.Dependencies.BotAPIURL != "" {
			cfg.BotAPIURL = f.Dependencies.BotAPIURL
		}
		if f.Dependencies.BlobAPIURL != "" {
			cfg.BlobAPIURL = f.Dependencies.BlobAPIURL
		}
	}

	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.EventTopic = envOrDefault("EVENT_TOPIC", cfg.EventTopic)
	cfg.AdminPassword = envOrDefault("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.SyncSecretKey = envOrDefault("SYNC_SECRET_KEY", cfg.SyncSecretKey)
	cfg.TelegramBotToken = envOrDefault("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	cfg.BotAPIURL = envOrDefault("BOT_API_URL", cfg.BotAPIURL)
	cfg.BotAPIKey = envOrDefault("BOT_API_KEY", cfg.BotAPIKey)
	cfg.BlobAPIURL = envOrDefault("BLOB_API_URL", cfg.BlobAPIURL)
	cfg.BlobReadWriteToken = envOrDefault("BLOB_READ_WRITE_TOKEN", cfg.BlobReadWriteToken)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaintenanceSweepInterval = time.Duration(envInt("MAINTENANCE_SWEEP_SECONDS",
		int(cfg.MaintenanceSweepInterval.Seconds()))) * time.Second

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Lifecycle sweep
	SweepEnabled  bool
	SweepInterval time.Duration

	// Notification collaborators
	PosthogAPIKey    string `mapstructure:"POSTHOG_API_KEY"`
	NotifyWebhookURL string `mapstructure:"NOTIFY_WEBHOOK_URL"`

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string `mapstructure:"RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SWEEP_ENABLED", true)
	viper.SetDefault("SWEEP_INTERVAL", "1h")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.SweepEnabled = viper.GetBool("SWEEP_ENABLED")

	sweepIntervalStr := viper.GetString("SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil || sweepInterval <= 0 {
		sweepInterval = time.Hour
		if sweepIntervalStr != "" {
			log.Printf("Warning: Invalid value for SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepIntervalStr, sweepInterval.String())
		}
	}
	cfg.SweepInterval = sweepInterval

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

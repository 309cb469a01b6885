package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings. It is built once at startup and
// passed by reference into the services and the HTTP layer.
type Config struct {
	AppPort     string
	DatabaseDSN string

	JWTSecret string
	TokenTTL  time.Duration

	AllowedOrigins string

	RabbitMQURL string

	MaxImageBytes int
}

// Load reads configuration from environment variables via Viper, applying
// defaults for anything unset.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "mentorlink.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("MAX_IMAGE_BYTES", 1<<20) // 1 MiB
	viper.AutomaticEnv()

	return &Config{
		AppPort:        viper.GetString("APP_PORT"),
		DatabaseDSN:    viper.GetString("DATABASE_DSN"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		TokenTTL:       time.Duration(viper.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,
		AllowedOrigins: viper.GetString("ALLOWED_ORIGINS"),
		RabbitMQURL:    viper.GetString("RABBITMQ_URL"),
		MaxImageBytes:  viper.GetInt("MAX_IMAGE_BYTES"),
	}
}

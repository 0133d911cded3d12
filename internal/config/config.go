package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application configuration
type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	DBConn   string `env:"DB_CONN" env-default:"host=localhost port=5432 user=postgres password=postgres dbname=mechanic_shop sslmode=disable"`
	LogLevel string `env:"LOG_LEVEL" env-default:"INFO"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"dev-secret-change-in-production"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	CacheTTL          time.Duration `env:"CACHE_TTL" env-default:"300s"`
	MechanicsCacheTTL time.Duration `env:"MECHANICS_CACHE_TTL" env-default:"600s"`

	SMTPHost     string `env:"SMTP_HOST" env-default:"localhost"`
	SMTPPort     string `env:"SMTP_PORT" env-default:"587"`
	SMTPUsername string `env:"SMTP_USERNAME" env-default:""`
	SMTPPassword string `env:"SMTP_PASSWORD" env-default:""`
	SenderEmail  string `env:"SENDER_EMAIL" env-default:"noreply@mechanic-shop.local"`

	ReminderSchedule string        `env:"REMINDER_SCHEDULE" env-default:"0 8 * * *"`
	OverdueAfter     time.Duration `env:"OVERDUE_AFTER" env-default:"168h"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on minimal images

	"github.com/go-playground/validator/v10"

	"github.com/ashureev/boj-daily/internal/progress"
	"github.com/ashureev/boj-daily/internal/solvedac"
)

var validate = validator.New()

// Config holds all application configuration. It is built once at process
// start and passed to the components that need it.
type Config struct {
	Port            string        `validate:"required,numeric"`
	DBPath          string        `validate:"required"`
	WebhookURL      string        `validate:"omitempty,url"`
	SolvedACBaseURL string        `validate:"required,url"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	Timezone        string        `validate:"required"`
	LapsePolicy     progress.LapsePolicy

	location *time.Location
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./data/users.db"),
		WebhookURL:      getEnv("WEBHOOK_URL", ""),
		SolvedACBaseURL: getEnv("SOLVEDAC_BASE_URL", solvedac.DefaultBaseURL),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		Timezone:        getEnv("TIMEZONE", "Asia/Seoul"),
	}

	policy, err := progress.ParseLapsePolicy(getEnv("STREAK_LAPSE_POLICY", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.LapsePolicy = policy

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location returns the timezone that defines calendar days.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// APIBaseURL is the public address of this API. Confirmation links in
	// outgoing mail are built on it.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`

	// TripTimezone is the IANA zone used to split trips into calendar days
	// and to print dates in mail bodies.
	TripTimezone string `env:"TRIP_TIMEZONE" envDefault:"UTC"`

	// Location is TripTimezone resolved by Load.
	Location *time.Location `env:"-"`

	// SMTPHost selects the mail relay. When empty, messages are written to
	// the log instead of being sent.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"Trip Planner <trips@example.com>"`

	// KafkaBrokers enables lifecycle event publishing. When empty, events
	// are dropped.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"trip-events"`

	// RequestTimeout bounds each HTTP request, notifications included.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// NotifyTimeout bounds each individual mail send.
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`

	// NotifyConcurrency caps parallel sends while inviting participants.
	NotifyConcurrency int `env:"NOTIFY_CONCURRENCY" envDefault:"4"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from the process environment and returns a Config.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom reads configuration from the given variables instead of the
// process environment. Returns an error naming any required variable that
// is not set or any value that does not parse.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.CORSOrigins = compact(cfg.CORSOrigins)
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)

	loc, err := time.LoadLocation(cfg.TripTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("config: TRIP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.NotifyConcurrency < 1 {
		return Config{}, fmt.Errorf("config: NOTIFY_CONCURRENCY must be at least 1, got %d", cfg.NotifyConcurrency)
	}
	if cfg.MaxBodyBytes < 1 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}

	return cfg, nil
}

// compact trims every entry and drops the empty ones.
func compact(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Booking   BookingConfig   `yaml:"booking"`
	Payment   PaymentConfig   `yaml:"payment"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type HTTPConfig struct {
	Address         string   `yaml:"address"`
	ShutdownSeconds int      `yaml:"shutdown_seconds"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// BookingConfig holds the pricing constants and lifetimes of the booking flow.
type BookingConfig struct {
	DurationLabel       string  `yaml:"duration_label"`
	Tax                 float64 `yaml:"tax"`
	TravelFee           float64 `yaml:"travel_fee"`
	BookingIDPrefix     string  `yaml:"booking_id_prefix"`
	SessionTTLMinutes   int     `yaml:"session_ttl_minutes"`
	AgentCacheTTLSecond int     `yaml:"agent_cache_ttl_seconds"`
}

func (b BookingConfig) SessionTTL() time.Duration {
	return time.Duration(b.SessionTTLMinutes) * time.Minute
}

func (b BookingConfig) AgentCacheTTL() time.Duration {
	return time.Duration(b.AgentCacheTTLSecond) * time.Second
}

type PaymentConfig struct {
	// Provider selects the card processor: "mock" or "stripe".
	Provider  string `yaml:"provider"`
	StripeKey string `yaml:"stripe_key"`
	Currency  string `yaml:"currency"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// Default returns the values used for any key missing from the config file.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Address: ":8080", ShutdownSeconds: 5, CORSOrigins: []string{"*"}},
		Booking: BookingConfig{
			DurationLabel:       "2 hours",
			Tax:                 10,
			TravelFee:           20,
			BookingIDPrefix:     "BK",
			SessionTTLMinutes:   30,
			AgentCacheTTLSecond: 300,
		},
		Payment:   PaymentConfig{Provider: "mock", Currency: "usd"},
		RateLimit: RateLimitConfig{RequestsPerMinute: 200, Burst: 50},
		Log:       LogConfig{Env: "development", Level: "info"},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Payment.Provider {
	case "mock":
	case "stripe":
		if c.Payment.StripeKey == "" {
			return fmt.Errorf("invalid config: payment.stripe_key is required for the stripe provider")
		}
	default:
		return fmt.Errorf("invalid config: unknown payment provider %q", c.Payment.Provider)
	}
	if c.Booking.BookingIDPrefix == "" {
		return fmt.Errorf("invalid config: booking.booking_id_prefix must not be empty")
	}
	if c.Booking.Tax < 0 {
		return fmt.Errorf("invalid config: booking.tax must not be negative")
	}
	// A zero fee would make home visits indistinguishable from shop visits.
	if c.Booking.TravelFee <= 0 {
		return fmt.Errorf("invalid config: booking.travel_fee must be positive")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"tokenlotto/database"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string `env:"DISCORD_TOKEN"`
	GuildID      string `env:"GUILD_ID"` // Register commands on one guild only when set

	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`

	// Ledger configuration
	TotalSupply     int64  `env:"TOKEN_TOTAL_SUPPLY" envDefault:"1000000"`
	TreasuryAccount string `env:"TOKEN_TREASURY_ACCOUNT"` // Account credited with the supply, none if empty

	// Lottery configuration
	TicketPrice int64 `env:"LOTTERY_TICKET_PRICE" envDefault:"100"`

	// NATS configuration
	NATSEnabled bool   `env:"NATS_ENABLED" envDefault:"false"`
	NATSServers string `env:"NATS_SERVERS" envDefault:"nats://nats:4222"` // comma-separated

	// OpenTelemetry configuration
	OTelEnabled              bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName          string `env:"OTEL_SERVICE_NAME" envDefault:"tokenlotto"`
	OTelExporterType         string `env:"OTEL_EXPORTER_TYPE" envDefault:"console"` // console, otlp or none
	OTelOTLPEndpoint         string `env:"OTEL_OTLP_ENDPOINT" envDefault:"otel-collector:4317"`
	OTelExportIntervalMillis int    `env:"OTEL_EXPORT_INTERVAL_MILLIS" envDefault:"30000"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = Load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Load parses the configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the fields the service cannot start without
func (c *Config) Validate() error {
	if c.TotalSupply <= 0 {
		return fmt.Errorf("TOKEN_TOTAL_SUPPLY must be positive")
	}
	if c.TicketPrice < 0 {
		return fmt.Errorf("LOTTERY_TICKET_PRICE cannot be negative")
	}

	switch c.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return fmt.Errorf("unknown OTEL_EXPORTER_TYPE %q", c.OTelExporterType)
	}

	if c.Environment == "test" {
		return nil
	}

	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.NATSEnabled && strings.TrimSpace(c.NATSServers) == "" {
		return fmt.Errorf("NATS_SERVERS is required when NATS_ENABLED is set")
	}
	return nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		TotalSupply:              1000,
		TicketPrice:              10,
		OTelServiceName:          "tokenlotto",
		OTelExporterType:         "none",
		OTelExportIntervalMillis: 1000,
		LogLevel:                 "debug",
		Environment:              "test",
	}
}

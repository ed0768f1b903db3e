package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr      string        `mapstructure:"LISTEN_ADDR"`
	OpsAddr         string        `mapstructure:"OPS_ADDR"`
	Env             string        `mapstructure:"ENV"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT"`
	MaxMessageBytes int           `mapstructure:"MAX_MESSAGE_BYTES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults. READ_TIMEOUT of zero keeps idle clients connected forever,
	// which the desktop clients rely on for chat.
	v.SetDefault("LISTEN_ADDR", ":1437")
	v.SetDefault("OPS_ADDR", ":8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("READ_TIMEOUT", "0")
	v.SetDefault("WRITE_TIMEOUT", "10s")
	v.SetDefault("MAX_MESSAGE_BYTES", 1<<16)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("LISTEN_ADDR")
	v.BindEnv("OPS_ADDR")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("READ_TIMEOUT")
	v.BindEnv("WRITE_TIMEOUT")
	v.BindEnv("MAX_MESSAGE_BYTES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.DBMaxConns)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.MaxMessageBytes < 1024 {
		return fmt.Errorf("MAX_MESSAGE_BYTES must be at least 1024, got %d", c.MaxMessageBytes)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

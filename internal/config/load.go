package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (prefix TASKDECK_,
// dots replaced by underscores, e.g. TASKDECK_SERVER_PORT) and an optional
// config.yaml in the working directory. Environment variables take
// precedence. Returns a validated Config or an error describing what is
// missing or out of range.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("notification.horizon_hours", 24)
	v.SetDefault("notification.poll_interval", "5s")
	v.SetDefault("notification.record_ttl", "24h")
	v.SetDefault("notification.log_file", "notifications.log")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults carry the load.
	}

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// the ones without defaults explicitly.
	if err := v.BindEnv("database.url"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

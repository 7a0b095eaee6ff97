package config

import "time"

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database" validate:"required"`
	Redis        RedisConfig        `mapstructure:"redis" validate:"required"`
	Notification NotificationConfig `mapstructure:"notification" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the database settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains the settings for the queue store backing the
// reminder pipeline.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// NotificationConfig contains the reminder pipeline settings. The horizon
// is used both when deciding whether a saved task warrants a reminder and
// when the worker re-checks a popped record.
type NotificationConfig struct {
	HorizonHours int           `mapstructure:"horizon_hours" validate:"required,gt=0"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"required,gt=0"`
	RecordTTL    time.Duration `mapstructure:"record_ttl" validate:"required,gt=0"`
	LogFile      string        `mapstructure:"log_file" validate:"required"`
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Lottery  LotteryConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration. An empty URI selects
// the in-memory store.
type MongoDBConfig struct {
	URI      string
	Database string
}

// LotteryConfig holds the draw-cycle configuration: the timezone that
// defines "today" and the cron spec for the nightly resolution.
type LotteryConfig struct {
	Timezone    string
	ResolveCron string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Location resolves the configured lottery timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Lottery.Timezone)
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "8000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "")
	viper.SetDefault("MongoDB.Database", "midnight-lottery")
	viper.SetDefault("Lottery.Timezone", "Europe/Amsterdam")
	viper.SetDefault("Lottery.ResolveCron", "0 0 * * *")
	viper.SetDefault("LogLevel", "info")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Session     SessionConfig     `mapstructure:"session"`
	Log         LogConfig         `mapstructure:"log"`
	LocalServer LocalServerConfig `mapstructure:"localserver"`
}

// APIConfig holds the remote API endpoint configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LocalServerConfig holds the local development server configuration
type LocalServerConfig struct {
	Addr     string         `mapstructure:"addr"`
	JWTKey   string         `mapstructure:"jwt_key"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds database configuration for the local server
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// API defaults
	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("api.timeout", 15*time.Second)

	// Session defaults
	viper.SetDefault("session.token_file", defaultTokenFile())

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Local server defaults
	viper.SetDefault("localserver.addr", ":8000")
	viper.SetDefault("localserver.jwt_key", "stulang-dev-key")
	viper.SetDefault("localserver.username", "learner")
	viper.SetDefault("localserver.password", "secret")
	viper.SetDefault("localserver.database.driver", "sqlite")
	viper.SetDefault("localserver.database.dsn", "stulang.db")
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stulang-token.json"
	}
	return filepath.Join(home, ".stulang", "token.json")
}

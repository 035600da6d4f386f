package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	appDir     = ".hirematch"
	envPrefix  = "HIREMATCH"
	configName = "config.yaml"
)

// Config holds the application configuration
type Config struct {
	DBPath          string `mapstructure:"db_path"`
	LogJSON         bool   `mapstructure:"log_json"`
	LogDebug        bool   `mapstructure:"log_debug"`
	ServerAddr      string `mapstructure:"server_addr"`
	RateLimitPerMin int    `mapstructure:"rate_limit_per_min"`
	Workers         int    `mapstructure:"workers"` // 0 uses GOMAXPROCS
	DefaultLimit    int    `mapstructure:"default_limit"`
}

// ValidKeys lists the keys `config set` accepts
var ValidKeys = []string{
	"db_path",
	"log_json",
	"log_debug",
	"server_addr",
	"rate_limit_per_min",
	"workers",
	"default_limit",
}

var AppConfig *Config

// Initialize loads the configuration file at path, creating it with defaults
// if it does not exist. An empty path uses ~/.hirematch/config.yaml.
// Every key can be overridden with a HIREMATCH_<KEY> environment variable.
func Initialize(path string) error {
	if path == "" {
		path = GetConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfig(path); err != nil {
			return err
		}
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db_path", defaultDBPath())
	viper.SetDefault("log_json", false)
	viper.SetDefault("log_debug", false)
	viper.SetDefault("server_addr", ":8080")
	viper.SetDefault("rate_limit_per_min", 120)
	viper.SetDefault("workers", 0)
	viper.SetDefault("default_limit", 20)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := fmt.Sprintf(`# Hirematch Configuration
# SQLite database holding candidates and saved jobs
db_path: %q

# Logging
log_json: false
log_debug: false

# HTTP server (hirematch serve)
server_addr: ":8080"
rate_limit_per_min: 120

# Search
workers: 0        # scoring goroutines, 0 = number of CPUs
default_limit: 20 # results per page when the request sets none
`, defaultDBPath())
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	if !slices.Contains(ValidKeys, key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys, ", "))
	}
	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	AppConfig = &Config{}
	return viper.Unmarshal(AppConfig)
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the default config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, appDir, configName)
}

func defaultDBPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, appDir, "hirematch.db")
}

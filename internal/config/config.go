package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Matching MatchingConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// MatchingConfig holds fuzzy-match and duplicate-detection policy.
type MatchingConfig struct {
	// MaxDistance is the largest edit distance accepted when resolving a
	// location name against the gazetteer.
	MaxDistance int `mapstructure:"max_distance"`
	// DuplicateWindowMinutes is the tolerance around an existing departure
	// within which a new timing counts as a near duplicate.
	DuplicateWindowMinutes int `mapstructure:"duplicate_window_minutes"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use prefix
// PERUNDHU_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "perundhu", "perundhu.db"))
	v.SetDefault("matching.max_distance", 2)
	v.SetDefault("matching.duplicate_window_minutes", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PERUNDHU_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "perundhu"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PERUNDHU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Matching.MaxDistance < 0 {
		return Config{}, fmt.Errorf("matching.max_distance must be >= 0, got %d", c.Matching.MaxDistance)
	}
	if c.Matching.DuplicateWindowMinutes < 0 {
		return Config{}, fmt.Errorf("matching.duplicate_window_minutes must be >= 0, got %d", c.Matching.DuplicateWindowMinutes)
	}
	return c, nil
}

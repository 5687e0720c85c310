// Package config loads viewcast settings from viewcast.yaml and VIEWCAST_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"viewcast/internal/diagnostic"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. VIEWCAST_LOG_LEVEL for log.level.
const EnvPrefix = "VIEWCAST"

// Config represents the viewcast configuration
type Config struct {
	// TempDir is the root for owned temporary files and directories.
	TempDir string `mapstructure:"temp_dir"`
	// Schemas is an optional YAML file of additional directory formats.
	Schemas string    `mapstructure:"schemas"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads the configuration. When path is empty, viewcast.yaml is looked
// up in the working directory and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("temp_dir", os.TempDir())
	v.SetDefault("schemas", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("viewcast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: failed to read config file: %v", diagnostic.ErrConfiguration, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", diagnostic.ErrConfiguration, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Logger builds a zap logger for the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("%w: log.level: %v", diagnostic.ErrConfiguration, err)
	}

	return level, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.TempDir == "" {
		return fmt.Errorf("%w: temp_dir must not be empty", diagnostic.ErrConfiguration)
	}

	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}

	return nil
}

// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Parsers struct {
		Rbc struct {
			FallbackYear int `mapstructure:"fallback_year" yaml:"fallback_year"`
		} `mapstructure:"rbc" yaml:"rbc"`
		Words struct {
			YTolerance float64 `mapstructure:"y_tolerance" yaml:"y_tolerance"`
		} `mapstructure:"words" yaml:"words"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Server struct {
		Addr      string `mapstructure:"addr" yaml:"addr"`
		UploadDir string `mapstructure:"upload_dir" yaml:"upload_dir"`
		ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.spendsense")
	v.AddConfigPath(".spendsense")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SPENDSENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Parser defaults
	v.SetDefault("parsers.rbc.fallback_year", 2025)
	v.SetDefault("parsers.words.y_tolerance", 3.0)

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.export_dir", "exports")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Parsers.Rbc.FallbackYear < 2000 || config.Parsers.Rbc.FallbackYear > 2099 {
		return fmt.Errorf("parsers.rbc.fallback_year must be between 2000 and 2099, got: %d", config.Parsers.Rbc.FallbackYear)
	}

	if config.Parsers.Words.YTolerance <= 0 {
		return fmt.Errorf("parsers.words.y_tolerance must be positive, got: %f", config.Parsers.Words.YTolerance)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/registry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ENTITYMETA"

// Config represents the entitymeta configuration
type Config struct {
	// LogLevel is a zap level name: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`

	// FieldAccess lets exported fields without accessor methods become columns
	FieldAccess bool `mapstructure:"field_access"`

	// TypeMappingFile is a registry mapping file applied before TypeOverrides
	TypeMappingFile string `mapstructure:"type_mapping_file"`

	// TypeOverrides maps host type names to column types
	TypeOverrides map[string]string `mapstructure:"type_overrides"`
}

// Load loads the configuration from entitymeta.yaml in the working directory,
// after loading an optional .env file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads the configuration from path, or from entitymeta.yaml in the
// working directory when path is empty. A missing default file is not an error.
// Environment variables ENTITYMETA_LOG_LEVEL etc. override file values.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// type names contain dots, so they must not be read as key paths
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	v.SetDefault("log_level", "info")
	v.SetDefault("field_access", false)
	v.SetDefault("type_mapping_file", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("entitymeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level returns the parsed log level
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Logger builds a production zap logger at the configured level
func (c *Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.Level())
	return zc.Build()
}

// ApplyTo applies the mapping file and then the overrides to reg.
func (c *Config) ApplyTo(reg *registry.TypeRegistry) error {
	if c.TypeMappingFile != "" {
		if err := reg.LoadYAMLFile(c.TypeMappingFile); err != nil {
			return err
		}
	}
	if len(c.TypeOverrides) > 0 {
		return reg.ApplyNames(c.TypeOverrides, false)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.LogLevel != "" {
		if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	for name, tag := range cfg.TypeOverrides {
		if _, err := registry.ParseColumnType(tag); err != nil {
			return errors.NewConfigError(strings.TrimSpace(name), tag, errors.ErrUnknownColumnType)
		}
	}
	return nil
}

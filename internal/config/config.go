// Package config provides configuration management for the normalizer.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"apinorm/internal/logger"
	"apinorm/internal/models"
	"apinorm/internal/normalizer"
	"apinorm/pkg/fieldpath"
)

// Configuration validation errors.
var (
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidMaxErrors   = errors.New("handler.max_errors must be at least 1")
	ErrEmptySynonymField  = errors.New("synonym field name must not be empty")
	ErrEmptySynonymList   = errors.New("synonym field must list at least one path")
	ErrInvalidSynonymPath = errors.New("synonym path must be a well-formed dot-path")
	ErrEmptyRequiredField = errors.New("required field name must not be empty")
)

// Config represents the complete normalizer configuration.
type Config struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Handler    HandlerConfig    `yaml:"handler"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// NormalizerConfig extends the reference synonym mapping and names the
// fields every response must carry.
type NormalizerConfig struct {
	// Synonyms lists extra candidate paths per canonical field. They are
	// appended after the reference mapping, so they resolve at lower
	// priority than the built-in candidates.
	Synonyms map[string][]string `yaml:"synonyms"`
	// RequiredFields defaults to ["content"].
	RequiredFields []string `yaml:"required_fields"`
}

// HandlerConfig defines response handler behavior.
type HandlerConfig struct {
	EnableLogging  bool `yaml:"enable_logging"`
	EnableFallback bool `yaml:"enable_fallback"`
	MaxErrors      int  `yaml:"max_errors"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Normalizer: NormalizerConfig{
			RequiredFields: []string{models.FieldContent},
		},
		Handler: HandlerConfig{
			EnableLogging:  true,
			EnableFallback: true,
			MaxErrors:      normalizer.DefaultMaxErrors,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Omitted keys keep
// their defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for field, paths := range c.Normalizer.Synonyms {
		if field == "" {
			return ErrEmptySynonymField
		}

		if len(paths) == 0 {
			return fmt.Errorf("%w: field %q", ErrEmptySynonymList, field)
		}

		for _, path := range paths {
			if !fieldpath.Valid(path) {
				return fmt.Errorf("%w: %q for field %q", ErrInvalidSynonymPath, path, field)
			}
		}
	}

	for i, field := range c.Normalizer.RequiredFields {
		if field == "" {
			return fmt.Errorf("%w: required_fields[%d]", ErrEmptyRequiredField, i)
		}
	}

	if c.Handler.MaxErrors < 1 {
		return ErrInvalidMaxErrors
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// BuildResolver creates a resolver with the reference mapping plus the
// configured synonym extensions.
func (c *Config) BuildResolver() *normalizer.Resolver {
	resolver := normalizer.NewResolver()

	for field, paths := range c.Normalizer.Synonyms {
		for _, path := range paths {
			resolver.Register(field, path)
		}
	}

	return resolver
}

// BuildHandler creates a handler wired per this configuration.
func (c *Config) BuildHandler(log *logger.Logger) *normalizer.Handler {
	validator := normalizer.NewValidatorWith(c.BuildResolver())

	handler := normalizer.NewHandlerWith(validator, log)
	handler.SetMaxErrors(c.Handler.MaxErrors)

	return handler
}

// Options returns the per-call handler options this configuration implies.
func (c *Config) Options() normalizer.Options {
	required := c.Normalizer.RequiredFields
	if len(required) == 0 {
		required = []string{models.FieldContent}
	}

	return normalizer.Options{
		RequiredFields: required,
		EnableLogging:  c.Handler.EnableLogging,
		EnableFallback: c.Handler.EnableFallback,
	}
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{RequiredFields: %v, SynonymExtensions: %d, MaxErrors: %d}",
		c.Normalizer.RequiredFields,
		len(c.Normalizer.Synonyms),
		c.Handler.MaxErrors,
	)
}

// Package config provides configuration management for the claimgraph
// backend: environment variables first, with an optional yaml file override
// and hot reloading in development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment names the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// DefaultCeiling is the jurisdictional maximum claim amount for the
// small-claims forum.
const DefaultCeiling = 39900

// Config is the full application configuration.
type Config struct {
	Environment  Environment `yaml:"environment" validate:"required,oneof=development production test"`
	Port         int         `yaml:"port" validate:"required,min=1,max=65535"`
	Region       string      `yaml:"region"`
	TableName    string      `yaml:"tableName"`
	EventBusName string      `yaml:"eventBusName"`
	LogLevel     string      `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`

	// CeilingAmount is the small-claims jurisdictional maximum; rules,
	// scoring and eligibility all read it from here.
	CeilingAmount float64 `yaml:"ceilingAmount" validate:"gt=0"`

	Features Features `yaml:"features"`
}

// Features contains feature flags for the application
type Features struct {
	EnableMetrics        bool `yaml:"enableMetrics"`
	EnableEvents         bool `yaml:"enableEvents"`
	EnableCircuitBreaker bool `yaml:"enableCircuitBreaker"`
}

// Load builds the configuration from defaults, then the optional yaml file
// named by CONFIG_FILE, then environment variables, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:   Development,
		Port:          8080,
		Region:        "eu-central-1",
		LogLevel:      "info",
		CeilingAmount: DefaultCeiling,
		Features: Features{
			EnableMetrics:        true,
			EnableCircuitBreaker: true,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = Environment(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("TABLE_NAME"); v != "" {
		c.TableName = v
	}
	if v := os.Getenv("EVENT_BUS_NAME"); v != "" {
		c.EventBusName = v
		c.Features.EnableEvents = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CEILING_AMOUNT"); v != "" {
		if ceiling, err := strconv.ParseFloat(v, 64); err == nil && ceiling > 0 {
			c.CeilingAmount = ceiling
		}
	}
	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		c.Features.EnableMetrics = v == "true"
	}
	if v := os.Getenv("ENABLE_CIRCUIT_BREAKER"); v != "" {
		c.Features.EnableCircuitBreaker = v == "true"
	}
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

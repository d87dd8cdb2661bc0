//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-warehouse.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for pgedge-warehouse.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`
}

// SeedConfig holds configuration for dataset generation and loading.
type SeedConfig struct {
	// Seed is the random seed for the generator. The same seed and
	// population always produce the same dataset.
	Seed int64 `mapstructure:"seed"`

	// Products is the number of catalog products to generate.
	Products int `mapstructure:"products"`

	// Customers is the number of customer accounts to generate.
	Customers int `mapstructure:"customers"`

	// Orders is the number of orders to generate.
	Orders int `mapstructure:"orders"`

	// Sessions is the number of web sessions to generate.
	Sessions int `mapstructure:"sessions"`

	// LookbackDays is the size of the historical window, ending now,
	// that all generated timestamps fall into.
	LookbackDays int `mapstructure:"lookback_days"`

	// DropExisting drops the existing schema before seeding.
	DropExisting bool `mapstructure:"drop_existing"`
}

// ServeConfig holds configuration for the HTTP API server.
type ServeConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen"`
}

// DefaultConfig returns a Config with default values.
// The default population matches the demo dataset shipped with the
// static showcase: 250 products, 3500 customers, 22000 orders and
// 90000 web sessions over a one year window.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Seed: SeedConfig{
			Seed:         7,
			Products:     250,
			Customers:    3500,
			Orders:       22000,
			Sessions:     90000,
			LookbackDays: 365,
			DropExisting: false,
		},
		Serve: ServeConfig{
			Listen: ":8000",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-warehouse.yaml
// 3. ~/.config/pgedge-warehouse/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-warehouse")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-warehouse"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
// Population consistency (e.g. orders without customers) is the
// generator's responsibility; this only rejects values that are
// invalid regardless of the rest of the config.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Products < 0 || c.Seed.Customers < 0 || c.Seed.Orders < 0 || c.Seed.Sessions < 0 {
		return fmt.Errorf("population counts must be non-negative")
	}
	if c.Seed.LookbackDays < 1 {
		return fmt.Errorf("lookback_days must be at least 1")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Serve.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}

// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, blob client) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Vidora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DataDir is the directory holding the flat-file document collections
	// (users.json, videos.json, comments.json, categories.json). It is
	// created on first access if absent.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage (MinIO / S3-compatible) for video assets and avatars.
	// When S3Endpoint is empty the blob features are disabled and upload
	// endpoints return 503.
	S3Endpoint   string        `env:"S3_ENDPOINT"`
	S3Bucket     string        `env:"S3_BUCKET"     envDefault:"vidora"`
	S3AccessKey  string        `env:"S3_ACCESS_KEY"`
	S3SecretKey  string        `env:"S3_SECRET_KEY"`
	S3PresignTTL time.Duration `env:"S3_PRESIGN_TTL" envDefault:"15m"`

	// ExtraOrigins lists additional exact origins allowed by CORS in
	// production, on top of the first-party vidora.app domains.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra exact origins permitted by CORS.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

// BlobEnabled reports whether object storage is configured.
func (c *Config) BlobEnabled() bool {
	return c.S3Endpoint != ""
}

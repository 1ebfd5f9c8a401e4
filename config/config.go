// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"path/filepath"

	"codeberg.org/locstore/locstore/core/idgen"
	"codeberg.org/locstore/locstore/resource"
)

// Global exposes the application configuration.
var Global Config

// Config holds the application configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	// RunID tags every log line of one invocation.
	RunID string `yaml:"-"`

	Store struct {
		// DefaultLocale is the fallback locale of a bundle.
		DefaultLocale string `env:"LOCSTORE_DEFAULT_LOCALE,overwrite" yaml:"defaultLocale"`
		// Directory holds one record file per locale.
		Directory string `env:"LOCSTORE_DIRECTORY,overwrite" yaml:"directory"`
		// RawFormat is the record format used when writing new locale files.
		RawFormat string          `env:"LOCSTORE_FORMAT,overwrite" yaml:"format"`
		Format    resource.Format `yaml:"-"`
		// Compress wraps newly written locale files in zstd.
		Compress bool `env:"LOCSTORE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"store"`

	Cache struct {
		// Size bounds the number of cached language preference matches.
		Size int `env:"LOCSTORE_CACHE_SIZE,overwrite" yaml:"size"`
	} `yaml:"cache"`

	Log struct {
		Level   string   `env:"LOCSTORE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"LOCSTORE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"LOCSTORE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing dictionary and template keys are logged,
		// deduplicated per locale+key.
		StrictMissingKeys bool `env:"LOCSTORE_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from various sources, in increasing
// order of precedence: defaults, the YAML file, a .env file and the
// environment. configFlag is the value of the --config flag, empty if unset.
func (cfg *Config) LoadConfig(configFlag string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.RunID = idgen.Make()

	if err := cfg.readYAML(configFilePath(configFlag)); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// LocalePath returns the path a new file for locale is written to, using
// the configured directory, format and compression.
func (cfg *Config) LocalePath(locale string) string {
	name := locale + cfg.Store.Format.Extension()
	if cfg.Store.Compress {
		name += resource.CompressedExtension
	}

	return filepath.Join(cfg.Store.Directory, name)
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/locstore/locstore/i18n"
	"codeberg.org/locstore/locstore/resource"
)

// validation errors.
var (
	errInvalidDefaultLocale = errors.New("invalid Store.DefaultLocale")
	errEmptyDirectory       = errors.New("Store.Directory cannot be empty")
	errCompressedSQLite     = errors.New("Store.Compress cannot be used with the sqlite format")
	errInvalidCacheSize     = errors.New("Cache.Size must be positive")
	errInvalidLogLevel      = errors.New("invalid Log.Level")
	errInvalidLogFormat     = errors.New("invalid Log.Format")
)

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// validateAndSet validates the configuration and populates derived fields.
func (cfg *Config) validateAndSet() error {
	cfg.Store.DefaultLocale = strings.TrimSpace(cfg.Store.DefaultLocale)
	if cfg.Store.DefaultLocale == "" {
		cfg.Store.DefaultLocale = i18n.BaseLocale
		log.Info().
			Str("locale", cfg.Store.DefaultLocale).
			Msg("Using default locale")
	}

	if _, err := language.Parse(strings.ReplaceAll(cfg.Store.DefaultLocale, "_", "-")); err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidDefaultLocale, cfg.Store.DefaultLocale, err)
	}

	if cfg.Store.Directory == "" {
		return errEmptyDirectory
	}

	format, err := resource.ParseFormat(cfg.Store.RawFormat)
	if err != nil {
		return fmt.Errorf("invalid Store.Format: %w", err)
	}

	cfg.Store.Format = format

	if cfg.Store.Compress && format == resource.FormatSQLite {
		return errCompressedSQLite
	}

	if cfg.Cache.Size <= 0 {
		return fmt.Errorf("%w, got %d", errInvalidCacheSize, cfg.Cache.Size)
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("%w %q, expected one of %s", errInvalidLogLevel, cfg.Log.Level, strings.Join(logLevels, ", "))
	}

	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("%w %q, expected one of %s", errInvalidLogFormat, cfg.Log.Format, strings.Join(logFormats, ", "))
	}

	return nil
}

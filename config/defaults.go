// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"codeberg.org/locstore/locstore/bundle"
	"codeberg.org/locstore/locstore/i18n"
	"codeberg.org/locstore/locstore/resource"
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Store.DefaultLocale = i18n.BaseLocale
	cfg.Store.Directory = "./locales"
	cfg.Store.RawFormat = string(resource.FormatYAML)
	cfg.Store.Compress = false

	cfg.Cache.Size = bundle.DefaultCacheSize

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Internationalization.StrictMissingKeys = false
}

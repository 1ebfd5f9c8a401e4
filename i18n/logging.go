// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// Logger is the logger used by package i18n.
	Logger = log.With().Str("sys", "i18n").Logger()

	// missingKeyOnce deduplicates WARN logs for missing keys in strict mode.
	// The key is locale+"\x00"+key.
	missingKeyOnce sync.Map
)

// SetupLogger rebinds Logger to the current global logger. Call it after the
// global logger has been configured.
func SetupLogger() {
	Logger = log.With().Str("sys", "i18n").Logger()
}

// missing reports a lookup miss for key when s is in strict mode.
func (s *Store) missing(key string) {
	if !s.strict {
		return
	}

	logMissingOnce(s.locale, key)
}

// logMissingOnce logs a missing translation warning once per (locale, key) pair.
func logMissingOnce(locale, key string) {
	id := locale + "\x00" + key
	if _, loaded := missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing i18n translation")
	}
}

// logDiff writes a one-line summary of a load diff.
func logDiff(locale string, d Diff) {
	if d.Empty() {
		Logger.Debug().Str("locale", locale).Msg("Loaded translations match store")

		return
	}

	ev := Logger.Info()
	if len(d.Missing) > 0 {
		ev = Logger.Warn()
	}

	ev.Str("locale", locale).
		Int("missing", len(d.Missing)).
		Int("extra", len(d.Extra)).
		Msg("Loaded translations differ from store")
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package bundle

import (
	"context"

	"golang.org/x/text/language"

	"codeberg.org/locstore/locstore/i18n"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// WithTag stores t in ctx and returns a derived context that carries it.
// Passing the zero value of [language.Tag] clears any existing value.
//
// The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx. ok is false when ctx is
// nil or carries no tag.
func TagFrom(ctx context.Context) (t language.Tag, ok bool) {
	if ctx == nil {
		return language.Und, false
	}

	t, _ = ctx.Value(tagKey).(language.Tag)
	if t == (language.Tag{}) {
		return language.Und, false
	}

	return t, true
}

// WithPreferences matches prefs against b and installs the matched tag in
// the returned context.
func (b *Bundle) WithPreferences(ctx context.Context, prefs ...string) context.Context {
	_, tag := b.Match(prefs...)

	return WithTag(ctx, tag)
}

// FromContext returns the store for the tag carried by ctx, matching it
// against the bundle's locales. Without a tag the default store is returned.
func (b *Bundle) FromContext(ctx context.Context) *i18n.Store {
	t, ok := TagFrom(ctx)
	if !ok {
		return b.Default()
	}

	if s, ok := b.Store(t); ok {
		return s
	}

	s, _ := b.Match(t.String())

	return s
}

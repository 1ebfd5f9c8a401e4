// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package bundle

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/locstore/locstore/i18n"
)

// writeLocale saves a store holding a single greeting to dir/name.
func writeLocale(t *testing.T, dir, name, locale, greeting string) {
	t.Helper()

	s := i18n.New(locale)
	s.Add("greeting", greeting)
	require.NoError(t, s.SaveFile(filepath.Join(dir, name)))
}

func testDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeLocale(t, dir, "en.yaml", "en", "Hello")
	writeLocale(t, dir, "fr.po", "fr", "Bonjour")
	writeLocale(t, dir, "pt_BR.toml", "pt-BR", "Olá")
	writeLocale(t, dir, "ja.tsv.zst", "", "こんにちは")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not-a-tag!.yaml"), []byte("{}"), 0o600))

	return dir
}

func greeting(t *testing.T, s *i18n.Store) string {
	t.Helper()
	require.NotNil(t, s)

	v, ok := s.Lookup("greeting")
	require.True(t, ok)

	return v
}

func TestLoad(t *testing.T) {
	t.Parallel()

	b, err := Load(context.Background(), testDir(t), Options{})
	require.NoError(t, err)

	assert.Equal(t, []language.Tag{
		language.English,
		language.French,
		language.Japanese,
		language.BrazilianPortuguese,
	}, b.Languages())

	s, ok := b.Store(language.BrazilianPortuguese)
	require.True(t, ok)
	assert.Equal(t, "Olá", greeting(t, s))

	// Locale taken from the file name when the file has none.
	s, ok = b.Store(language.Japanese)
	require.True(t, ok)
	assert.Equal(t, "ja", s.Locale())

	s, err = b.Lookup("pt_BR")
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", s.Locale())

	_, err = b.Lookup("de")
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestLoadMissingDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeLocale(t, dir, "fr.yaml", "fr", "Bonjour")

	b, err := Load(context.Background(), dir, Options{DefaultLocale: "de"})
	require.NoError(t, err)

	assert.Equal(t, language.German, b.DefaultTag())
	assert.Equal(t, "de", b.Default().Locale())
	assert.Equal(t, 0, b.Default().Len().Total())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("DuplicateLocale", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeLocale(t, dir, "en.yaml", "en", "Hello")
		writeLocale(t, dir, "en.toml", "en", "Hello")

		_, err := Load(context.Background(), dir, Options{})
		assert.ErrorIs(t, err, ErrDuplicateLocale)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.tsv"), []byte("nosep\tvalue\n"), 0o600))

		_, err := Load(context.Background(), dir, Options{})
		assert.ErrorIs(t, err, i18n.ErrFormat)
	})

	t.Run("MissingDir", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("BadDefault", func(t *testing.T) {
		t.Parallel()

		_, err := Load(context.Background(), t.TempDir(), Options{DefaultLocale: "!!"})
		assert.Error(t, err)
	})

	t.Run("Cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Load(ctx, testDir(t), Options{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMatch(t *testing.T) {
	t.Parallel()

	b, err := Load(context.Background(), testDir(t), Options{CacheSize: 2})
	require.NoError(t, err)

	tests := []struct {
		name  string
		prefs []string
		want  language.Tag
	}{
		{"Exact", []string{"pt-BR"}, language.BrazilianPortuguese},
		{"Regional", []string{"fr-CA"}, language.French},
		{"AcceptLanguage", []string{"de-DE, fr;q=0.8"}, language.French},
		{"Fallback", []string{"de"}, language.English},
		{"None", nil, language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Twice, so the second call is served from the cache.
			for range 2 {
				s, tag := b.Match(tt.prefs...)
				assert.Equal(t, tt.want, tag)
				assert.Equal(t, tt.want.String(), s.Locale())
			}
		})
	}
}

// Not parallel: swaps the package logger.
func TestMatchLogsCacheMisses(t *testing.T) {
	b, err := Load(context.Background(), testDir(t), Options{CacheSize: 1})
	require.NoError(t, err)

	var buf bytes.Buffer

	prev := Logger
	Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	t.Cleanup(func() { Logger = prev })

	b.Match("fr")
	b.Match("fr")
	b.Match("ja")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "cache hits are not logged")
	assert.Contains(t, lines[0], `"tag":"fr"`)
	assert.Contains(t, lines[0], `"evicted":false`)
	assert.Contains(t, lines[1], `"tag":"ja"`)
	assert.Contains(t, lines[1], `"cached":1`)
	assert.Contains(t, lines[1], `"evicted":true`)
}

func TestContext(t *testing.T) {
	t.Parallel()

	b, err := Load(context.Background(), testDir(t), Options{})
	require.NoError(t, err)

	_, ok := TagFrom(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "Hello", greeting(t, b.FromContext(context.Background())))

	ctx := b.WithPreferences(context.Background(), "fr-FR")
	tag, ok := TagFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, language.French, tag)
	assert.Equal(t, "Bonjour", greeting(t, b.FromContext(ctx)))

	ctx = WithTag(context.Background(), language.Portuguese)
	assert.Equal(t, "Olá", greeting(t, b.FromContext(ctx)))
}

func TestReload(t *testing.T) {
	t.Parallel()

	dir := testDir(t)

	b, err := Load(context.Background(), dir, Options{})
	require.NoError(t, err)

	s := i18n.New("fr")
	s.Add("farewell", "Au revoir")
	require.NoError(t, s.SaveFile(filepath.Join(dir, "fr.po")))

	diffs, err := b.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, i18n.Diff{Missing: []string{"greeting"}, Extra: []string{"farewell"}}, diffs["fr"])
	assert.True(t, diffs["en"].Empty())

	fr, ok := b.Store(language.French)
	require.True(t, ok)

	v, ok := fr.Lookup("farewell")
	assert.True(t, ok)
	assert.Equal(t, "Au revoir", v)
}

func TestReloadFailureKeepsStores(t *testing.T) {
	t.Parallel()

	dir := testDir(t)

	b, err := Load(context.Background(), dir, Options{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "fr.po")))

	_, err = b.Reload(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	fr, ok := b.Store(language.French)
	require.True(t, ok)
	assert.Equal(t, "Bonjour", greeting(t, fr))
}

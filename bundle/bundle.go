// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package bundle loads a directory of per-locale translation files and picks
the best store for a list of user language preferences.

A directory is expected to hold one record file per locale:

	<dir>/<locale>.<ext>

where <locale> is a BCP 47 tag written with hyphens or underscores, for
example "pt-BR.yaml" or "pt_BR.po", and <ext> is any extension understood by
package resource. The default locale is always present and is the fallback
for matching; when it has no file, an empty store stands in for it.
*/
package bundle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/locstore/locstore/core/lrucache"
	"codeberg.org/locstore/locstore/i18n"
	"codeberg.org/locstore/locstore/resource"
)

// Logger is the logger used by package bundle.
var Logger = log.With().Str("sys", "bundle").Logger()

// SetupLogger rebinds Logger to the current global logger.
func SetupLogger() {
	Logger = log.With().Str("sys", "bundle").Logger()
}

// DefaultCacheSize is the match cache capacity used when Options.CacheSize is zero.
const DefaultCacheSize = 256

var (
	// ErrDuplicateLocale is returned when two files in a directory name the same locale.
	ErrDuplicateLocale = errors.New("duplicate locale")

	// ErrUnknownLocale is returned for a locale the bundle does not hold.
	ErrUnknownLocale = errors.New("unknown locale")
)

// Options configures [Load].
type Options struct {
	// DefaultLocale is the fallback locale. Defaults to [i18n.BaseLocale].
	DefaultLocale string
	// CacheSize bounds the number of cached preference matches.
	// Defaults to [DefaultCacheSize].
	CacheSize int
	// StrictMissingKeys is passed to every loaded store.
	StrictMissingKeys bool
}

// entry is one loaded locale.
type entry struct {
	path  string // empty for a stand-in default store
	store *i18n.Store
}

// Bundle is a set of stores keyed by canonical language tag.
// It is safe for concurrent use. Stores handed out by a Bundle are shared
// and must be treated as read-only.
type Bundle struct {
	dir        string
	opts       Options
	defaultTag language.Tag

	mu      sync.RWMutex
	entries map[string]*entry

	// tags is fixed after Load: the default tag first, then the rest sorted.
	tags    []language.Tag
	matcher language.Matcher
	matches *lrucache.Cache[string, int]
}

// Load reads every record file in dir concurrently and builds a bundle.
// Files with an unsupported extension or a name that is not a language tag
// are skipped.
func Load(ctx context.Context, dir string, opts Options) (*Bundle, error) {
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = i18n.BaseLocale
	}

	if opts.CacheSize == 0 {
		opts.CacheSize = DefaultCacheSize
	}

	defaultTag, err := language.Parse(normalizeLocale(opts.DefaultLocale))
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", opts.DefaultLocale, err)
	}

	matches, err := lrucache.New[string, int](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("invalid match cache size %d: %w", opts.CacheSize, err)
	}

	paths, err := scan(dir)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		dir:        dir,
		opts:       opts,
		defaultTag: defaultTag,
		entries:    make(map[string]*entry, len(paths)+1),
		matches:    matches,
	}

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	for locale, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			store, err := i18n.ReadFile(path, i18n.WithStrictMissingKeys(opts.StrictMissingKeys))
			if err != nil {
				return fmt.Errorf("failed to load locale %s: %w", locale, err)
			}

			if store.Locale() == "" {
				store.SetLocale(locale)
			}

			mu.Lock()
			b.entries[locale] = &entry{path: path, store: store}
			mu.Unlock()

			n := store.Len()
			Logger.Info().
				Str("locale", locale).
				Str("file", path).
				Int("scalars", n.Scalars).
				Int("lists", n.Lists).
				Int("templates", n.Templates).
				Msg("Loaded locale")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if _, ok := b.entries[defaultTag.String()]; !ok {
		Logger.Warn().
			Str("locale", defaultTag.String()).
			Str("dir", dir).
			Msg("No file for default locale, using an empty store")

		b.entries[defaultTag.String()] = &entry{
			store: i18n.New(defaultTag.String(), i18n.WithStrictMissingKeys(opts.StrictMissingKeys)),
		}
	}

	b.tags = make([]language.Tag, 0, len(b.entries))
	b.tags = append(b.tags, defaultTag)

	rest := make([]language.Tag, 0, len(b.entries)-1)

	for locale := range b.entries {
		if locale != defaultTag.String() {
			rest = append(rest, language.Make(locale))
		}
	}

	slices.SortFunc(rest, func(x, y language.Tag) int { return strings.Compare(x.String(), y.String()) })

	b.tags = append(b.tags, rest...)
	b.matcher = language.NewMatcher(b.tags)

	return b, nil
}

// scan maps canonical locale names to record file paths in dir.
func scan(dir string) (map[string]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory: %w", err)
	}

	paths := make(map[string]string)

	for _, de := range dirEntries {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, de.Name())

		if _, _, err := resource.FormatFromPath(path); err != nil {
			Logger.Debug().Str("file", de.Name()).Msg("Skipping file with unsupported extension")

			continue
		}

		tag, err := language.Parse(normalizeLocale(resource.TrimExtension(de.Name())))
		if err != nil {
			Logger.Warn().Err(err).Str("file", de.Name()).Msg("Skipping invalid locale file")

			continue
		}

		locale := tag.String()
		if prev, ok := paths[locale]; ok {
			return nil, fmt.Errorf("%w %s: %s and %s", ErrDuplicateLocale, locale, filepath.Base(prev), de.Name())
		}

		paths[locale] = path
	}

	return paths, nil
}

// normalizeLocale accepts underscores in place of hyphens.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}

// Dir returns the directory the bundle was loaded from.
func (b *Bundle) Dir() string {
	return b.dir
}

// DefaultTag returns the fallback language tag.
func (b *Bundle) DefaultTag() language.Tag {
	return b.defaultTag
}

// Languages returns the tags of every loaded locale, the default first and
// the rest sorted by tag string. The returned slice is a copy.
func (b *Bundle) Languages() []language.Tag {
	return slices.Clone(b.tags)
}

// Store returns the store loaded for tag. The tag must match exactly.
func (b *Bundle) Store(tag language.Tag) (*i18n.Store, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.entries[tag.String()]
	if !ok {
		return nil, false
	}

	return e.store, true
}

// Lookup returns the store for a locale identifier such as "pt_BR".
func (b *Bundle) Lookup(locale string) (*i18n.Store, error) {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownLocale, locale, err)
	}

	s, ok := b.Store(tag)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLocale, locale)
	}

	return s, nil
}

// Default returns the store of the default locale.
func (b *Bundle) Default() *i18n.Store {
	s, _ := b.Store(b.defaultTag)

	return s
}

// Match returns the store best matching prefs, each of which may be a tag
// or an Accept-Language value. It falls back to the default locale.
func (b *Bundle) Match(prefs ...string) (*i18n.Store, language.Tag) {
	key := strings.Join(prefs, "\x00")

	idx, ok := b.matches.Get(key)
	if !ok {
		_, idx = language.MatchStrings(b.matcher, prefs...)
		evicted := b.matches.Add(key, idx)

		Logger.Debug().
			Strs("prefs", prefs).
			Stringer("tag", b.tags[idx]).
			Int("cached", b.matches.Len()).
			Bool("evicted", evicted).
			Msg("Matched language preferences")
	}

	tag := b.tags[idx]
	s, _ := b.Store(tag)

	return s, tag
}

// Reload reads every locale file again and replaces the stores only when
// all of them load. It returns the key differences per locale. Files added
// to the directory after Load are not picked up.
func (b *Bundle) Reload(ctx context.Context) (map[string]i18n.Diff, error) {
	b.mu.RLock()
	current := maps.Clone(b.entries)
	b.mu.RUnlock()

	var (
		mu    sync.Mutex
		next  = make(map[string]*entry, len(current))
		diffs = make(map[string]i18n.Diff, len(current))
	)

	g, ctx := errgroup.WithContext(ctx)

	for locale, e := range current {
		if e.path == "" {
			mu.Lock()
			next[locale] = e
			mu.Unlock()

			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			loaded, d, err := e.store.LoadFile(e.path)
			if err != nil {
				return fmt.Errorf("failed to reload locale %s: %w", locale, err)
			}

			mu.Lock()
			next[locale] = &entry{path: e.path, store: loaded}
			diffs[locale] = d
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.entries = next
	b.mu.Unlock()

	for _, locale := range slices.Sorted(maps.Keys(diffs)) {
		d := diffs[locale]
		if d.Empty() {
			continue
		}

		Logger.Info().
			Str("locale", locale).
			Strs("missing", d.Missing).
			Strs("extra", d.Extra).
			Msg("Locale changed on reload")
	}

	return diffs, nil
}

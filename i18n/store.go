// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"maps"
	"slices"

	"golang.org/x/text/language"
)

// Store holds the translations of a single locale in three independent
// tables: scalar strings, ordered string lists and template pattern lists.
//
// The same key may exist in every table at once. A Store is not safe for
// concurrent use; callers that share one must serialize access.
type Store struct {
	locale string
	strict bool

	scalars   map[string]string
	lists     map[string][]string
	templates map[string][]string
}

// Option configures a Store built by [New].
type Option func(*Store)

// WithStrictMissingKeys makes dictionary and template lookups log every
// missing translation once per locale and key.
func WithStrictMissingKeys(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// New returns an empty store for locale. The locale is an opaque identifier
// and is not validated.
func New(locale string, opts ...Option) *Store {
	s := &Store{
		locale:    locale,
		scalars:   make(map[string]string),
		lists:     make(map[string][]string),
		templates: make(map[string][]string),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Locale returns the locale identifier of s.
func (s *Store) Locale() string {
	return s.locale
}

// SetLocale replaces the locale identifier of s.
func (s *Store) SetLocale(locale string) {
	s.locale = locale
}

// Tag parses the locale identifier as a BCP 47 language tag.
// Underscores are accepted in place of hyphens.
func (s *Store) Tag() (language.Tag, error) {
	return parseLocale(s.locale)
}

// Add sets the scalar translation for key, replacing any previous value.
func (s *Store) Add(key, value string) {
	s.scalars[key] = value
}

// AddValues sets the list translation for key. values is copied, so the
// caller may reuse it afterwards. Order is preserved.
func (s *Store) AddValues(key string, values []string) {
	s.lists[key] = slices.Clone(nonNil(values))
}

// Lookup returns the scalar translation for key.
func (s *Store) Lookup(key string) (string, bool) {
	v, ok := s.scalars[key]

	return v, ok
}

// LookupValues returns a copy of the list translation for key.
func (s *Store) LookupValues(key string) ([]string, bool) {
	v, ok := s.lists[key]
	if !ok {
		return nil, false
	}

	return slices.Clone(v), true
}

// Remove deletes key from every table. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	delete(s.scalars, key)
	delete(s.lists, key)
	delete(s.templates, key)
}

// Sizes reports the number of entries in each table.
type Sizes struct {
	Scalars   int
	Lists     int
	Templates int
}

// Total returns the number of entries over all tables.
func (n Sizes) Total() int {
	return n.Scalars + n.Lists + n.Templates
}

// Len returns the table sizes of s.
func (s *Store) Len() Sizes {
	return Sizes{
		Scalars:   len(s.scalars),
		Lists:     len(s.lists),
		Templates: len(s.templates),
	}
}

// Keys returns the sorted keys of each table: scalars, lists, then templates.
// Template keys are composite (field, usage) keys.
func (s *Store) Keys() (scalars, lists, templates []string) {
	return sortedKeys(s.scalars), sortedKeys(s.lists), sortedKeys(s.templates)
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	c := New(s.locale, WithStrictMissingKeys(s.strict))

	maps.Copy(c.scalars, s.scalars)

	for k, v := range s.lists {
		c.lists[k] = slices.Clone(v)
	}

	for k, v := range s.templates {
		c.templates[k] = slices.Clone(v)
	}

	return c
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// nonNil maps a nil slice to an empty one so that stored lists never
// distinguish between the two.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

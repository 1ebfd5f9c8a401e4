// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"

	"codeberg.org/locstore/locstore/i18n/keys"
	"codeberg.org/locstore/locstore/i18n/usage"
)

// TemplateEntry is the pattern list used for one template usage.
// Usage must satisfy [usage.Usage.Valid]; check it first when building
// entries from converted integers, since [Store.AddTemplate] panics otherwise.
type TemplateEntry struct {
	Usage    usage.Usage
	Patterns []string
}

// templateKey returns the composite key a field's template is filed under.
func templateKey(field string, u usage.Usage) string {
	return keys.ComposeList(field, u.String())
}

// AddTemplate sets the patterns of entry for field, replacing any previous
// patterns for the same field and usage. Fields sharing identical patterns
// are stored separately and merged only when saved.
//
// AddTemplate panics if entry.Usage is not a declared usage.
func (s *Store) AddTemplate(field string, entry TemplateEntry) {
	if !entry.Usage.Valid() {
		panic("i18n.AddTemplate: invalid usage " + entry.Usage.String())
	}

	s.templates[templateKey(field, entry.Usage)] = slices.Clone(nonNil(entry.Patterns))
}

// AddTemplates calls [Store.AddTemplate] for every entry of templates.
// The usage stored in each entry is authoritative; the map key is not consulted.
func (s *Store) AddTemplates(field string, templates map[usage.Usage]TemplateEntry) {
	for _, entry := range templates {
		s.AddTemplate(field, entry)
	}
}

// LookupTemplate returns the patterns stored for field and u.
func (s *Store) LookupTemplate(field string, u usage.Usage) ([]string, bool) {
	v, ok := s.templates[templateKey(field, u)]
	if !ok {
		return nil, false
	}

	return slices.Clone(v), true
}

// LookupTemplates replaces the patterns of every entry in inOut that has a
// translation for field. Entries without one keep their patterns.
// It returns the number of entries replaced.
func (s *Store) LookupTemplates(field string, inOut map[usage.Usage]TemplateEntry) int {
	n := 0

	for k, entry := range inOut {
		key := templateKey(field, entry.Usage)
		if v, ok := s.templates[key]; ok {
			entry.Patterns = slices.Clone(v)
			inOut[k] = entry
			n++

			continue
		}

		s.missing(key)
	}

	return n
}

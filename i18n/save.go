// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"

	"codeberg.org/locstore/locstore/i18n/keys"
	"codeberg.org/locstore/locstore/resource"
)

// Record types of the serialized form.
const (
	RecordCulture  = "CULTURE"
	RecordValue    = "VALUE"
	RecordList     = "LIST"
	RecordTemplate = "TEMPLATE"
)

// templateGroup is a set of fields sharing one usage and pattern list.
type templateGroup struct {
	usage    string
	patterns []string
	fields   []string
}

// Save writes the contents of s to w as an ordered record stream: the
// locale, then scalars and lists in key order, then one record per distinct
// (usage, patterns) pair naming every field that shares it.
//
// w is not closed.
func (s *Store) Save(w resource.Writer) error {
	write := func(key, value string) error {
		if err := w.Write(resource.Record{Key: key, Value: value}); err != nil {
			return fmt.Errorf("failed to write record %q: %w", key, err)
		}

		return nil
	}

	if err := write(keys.RecordKey(RecordCulture, ""), s.locale); err != nil {
		return err
	}

	for _, key := range sortedKeys(s.scalars) {
		if err := write(keys.RecordKey(RecordValue, key), s.scalars[key]); err != nil {
			return err
		}
	}

	for _, key := range sortedKeys(s.lists) {
		if err := write(keys.RecordKey(RecordList, key), keys.ComposeList(s.lists[key]...)); err != nil {
			return err
		}
	}

	groups, err := s.groupTemplates()
	if err != nil {
		return err
	}

	for _, g := range groups {
		payload := keys.ComposeList(append([]string{g.usage}, g.fields...)...)
		if err := write(keys.RecordKey(RecordTemplate, payload), keys.ComposeList(g.patterns...)); err != nil {
			return err
		}
	}

	Logger.Debug().
		Str("locale", s.locale).
		Int("scalars", len(s.scalars)).
		Int("lists", len(s.lists)).
		Int("templates", len(s.templates)).
		Int("templateRecords", len(groups)).
		Msg("Saved translations")

	return nil
}

// groupTemplates inverts the template table, grouping fields by their
// encoded (usage, patterns) pair. Groups and fields within a group appear in
// the order first seen while walking template keys in sorted order.
func (s *Store) groupTemplates() ([]*templateGroup, error) {
	byPatterns := make(map[string]*templateGroup)

	var groups []*templateGroup

	for _, key := range sortedKeys(s.templates) {
		parts := keys.SplitList(key)
		if len(parts) != 2 {
			return nil, fmt.Errorf("i18n: corrupt template key %q", key)
		}

		field, usageName := parts[0], parts[1]
		patterns := s.templates[key]
		bucket := keys.ComposeList(append([]string{usageName}, patterns...)...)

		g, ok := byPatterns[bucket]
		if !ok {
			g = &templateGroup{usage: usageName, patterns: patterns}
			byPatterns[bucket] = g
			groups = append(groups, g)
		}

		g.fields = append(g.fields, field)
	}

	return groups, nil
}

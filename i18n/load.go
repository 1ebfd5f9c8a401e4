// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"codeberg.org/locstore/locstore/i18n/keys"
	"codeberg.org/locstore/locstore/i18n/usage"
	"codeberg.org/locstore/locstore/resource"
)

// Diff lists the keys that differ between a store and one loaded from it.
// Each list holds scalar keys, then list keys, then template keys, each
// group sorted.
type Diff struct {
	// Missing holds keys present in the original store but not in the loaded one.
	Missing []string
	// Extra holds keys present in the loaded store but not in the original one.
	Extra []string
}

// Empty reports whether the two stores hold the same keys.
func (d Diff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0
}

// Load reads a record stream written by [Store.Save] into a new store and
// reports how its keys differ from those of s. s is never modified.
//
// Records with an unknown type are skipped. A record key without a type
// separator, or a template record with an unknown usage or no fields, makes
// Load fail with a *FormatError and return no store. r is not closed.
func (s *Store) Load(r resource.Reader) (*Store, Diff, error) {
	loaded := New(s.locale, WithStrictMissingKeys(s.strict))

	for i := 0; ; i++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, Diff{}, fmt.Errorf("failed to read record %d: %w", i, err)
		}

		if err := loaded.apply(i, rec); err != nil {
			return nil, Diff{}, err
		}
	}

	d := s.diff(loaded)
	logDiff(loaded.locale, d)

	return loaded, d, nil
}

// Read loads a record stream into a new store without comparing it to
// another one.
func Read(r resource.Reader, opts ...Option) (*Store, error) {
	s, _, err := New("", opts...).Load(r)

	return s, err
}

func (s *Store) apply(index int, rec resource.Record) error {
	recordType, rest, ok := keys.SplitRecordKey(rec.Key)
	if !ok {
		return &FormatError{Index: index, Key: rec.Key, Reason: "missing record type separator"}
	}

	switch recordType {
	case RecordCulture:
		s.locale = rec.Value
	case RecordValue:
		s.Add(rest, rec.Value)
	case RecordList:
		s.AddValues(rest, keys.SplitList(rec.Value))
	case RecordTemplate:
		parts := keys.SplitList(rest)
		if len(parts) < 2 {
			return &FormatError{Index: index, Key: rec.Key, Reason: "template record names no field"}
		}

		u, err := usage.Parse(parts[0])
		if err != nil {
			return &FormatError{Index: index, Key: rec.Key, Reason: "bad template usage", Err: err}
		}

		patterns := keys.SplitList(rec.Value)
		for _, field := range parts[1:] {
			s.AddTemplate(field, TemplateEntry{Usage: u, Patterns: patterns})
		}
	default:
		Logger.Debug().
			Int("index", index).
			Str("type", recordType).
			Msg("Skipping record of unknown type")
	}

	return nil
}

// diff compares the keys of s (the original) with those of loaded.
func (s *Store) diff(loaded *Store) Diff {
	var d Diff

	d.Missing, d.Extra = appendKeyDiff(d.Missing, d.Extra, s.scalars, loaded.scalars)
	d.Missing, d.Extra = appendKeyDiff(d.Missing, d.Extra, s.lists, loaded.lists)
	d.Missing, d.Extra = appendKeyDiff(d.Missing, d.Extra, s.templates, loaded.templates)

	return d
}

func appendKeyDiff[V any](missing, extra []string, before, after map[string]V) ([]string, []string) {
	missing = append(missing, keysNotIn(before, after)...)
	extra = append(extra, keysNotIn(after, before)...)

	return missing, extra
}

// keysNotIn returns the sorted keys of a that are absent from b.
func keysNotIn[V any](a, b map[string]V) []string {
	var out []string

	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}

	slices.Sort(out)

	return out
}

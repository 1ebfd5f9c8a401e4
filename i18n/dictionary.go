// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"

	"codeberg.org/locstore/locstore/i18n/keys"
)

// Key is a dictionary key with a string form. String must be stable and
// distinct for distinct keys, since it becomes part of the composite key.
type Key interface {
	comparable
	String() string
}

// Text adapts a plain string to [Key].
type Text string

func (t Text) String() string { return string(t) }

// AddDictionary adds every entry of m as a scalar translation under the
// composite key of prefix and the entry key.
func AddDictionary[K Key](s *Store, prefix string, m map[K]string) {
	for k, v := range m {
		s.Add(keys.ComposeKey(prefix, k.String()), v)
	}
}

// AddDictionaryValues adds every entry of m as a list translation under the
// composite key of prefix and the entry key.
func AddDictionaryValues[K Key](s *Store, prefix string, m map[K][]string) {
	for k, v := range m {
		s.AddValues(keys.ComposeKey(prefix, k.String()), v)
	}
}

// LookupDictionary overwrites each entry of inOut that has a scalar
// translation under prefix. Entries without one keep their current value.
// It returns the number of entries replaced.
func LookupDictionary[K Key](s *Store, prefix string, inOut map[K]string) int {
	n := 0

	for k := range inOut {
		key := keys.ComposeKey(prefix, k.String())
		if v, ok := s.scalars[key]; ok {
			inOut[k] = v
			n++

			continue
		}

		s.missing(key)
	}

	return n
}

// LookupDictionaryValues is the list counterpart of [LookupDictionary].
func LookupDictionaryValues[K Key](s *Store, prefix string, inOut map[K][]string) int {
	n := 0

	for k := range inOut {
		key := keys.ComposeKey(prefix, k.String())
		if v, ok := s.lists[key]; ok {
			inOut[k] = slices.Clone(v)
			n++

			continue
		}

		s.missing(key)
	}

	return n
}

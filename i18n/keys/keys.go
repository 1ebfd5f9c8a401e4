// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keys

import "strings"

const (
	// Separator delimits the parts of a composite key or an encoded list.
	Separator = ";"

	// EscapedSeparator replaces every literal Separator inside a single part.
	//
	// A part that already contains EscapedSeparator does not survive a round
	// trip: it decodes to a Separator.
	EscapedSeparator = "__semi"
)

// Escape replaces literal separators in part with [EscapedSeparator].
func Escape(part string) string {
	return strings.ReplaceAll(part, Separator, EscapedSeparator)
}

// Unescape reverses [Escape].
func Unescape(part string) string {
	return strings.ReplaceAll(part, EscapedSeparator, Separator)
}

// ComposeList escapes every part and joins them with [Separator].
//
// An empty parts slice composes to the empty string.
func ComposeList(parts ...string) string {
	var b strings.Builder

	for i, part := range parts {
		if i > 0 {
			b.WriteString(Separator)
		}

		b.WriteString(Escape(part))
	}

	return b.String()
}

// SplitList splits s on [Separator] and unescapes each part.
//
// The empty string decodes to an empty list, so a list holding a single
// empty string cannot be told apart from an empty one.
func SplitList(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, Separator)
	for i, part := range parts {
		parts[i] = Unescape(part)
	}

	return parts
}

// ComposeKey builds the composite key for inner under prefix.
// It is equivalent to ComposeList(prefix, inner).
func ComposeKey(prefix, inner string) string {
	return ComposeList(prefix, inner)
}

// SplitRecordKey splits a record key on its first [Separator] into the record
// type and the remaining payload. The payload is returned as stored, without
// unescaping. ok is false when key holds no separator.
func SplitRecordKey(key string) (recordType, rest string, ok bool) {
	return strings.Cut(key, Separator)
}

// RecordKey joins a record type and a payload that is already encoded.
func RecordKey(recordType, payload string) string {
	return recordType + Separator + payload
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("malformed translation record")

// FormatError reports a record that cannot be decoded during Load.
type FormatError struct {
	// Index is the zero-based position of the record in the stream.
	Index int
	// Key is the raw record key.
	Key string
	// Reason describes what is wrong with the record.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("i18n: record %d %q: %s", e.Index, e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFormat) hold for any *FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

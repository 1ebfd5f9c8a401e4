// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for tagging a single run in logs.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Make makes a short ID from the wall clock time (HHMMSS) and 3 bytes of
// entropy, base64 encoded to 4 URL-safe characters.
func Make() string {
	return MakeAt(time.Now())
}

// MakeAt is [Make] for a given time.
func MakeAt(t time.Time) string {
	var entropy [3]byte

	_, _ = rand.Read(entropy[:])

	return t.Format("150405") + base64.RawURLEncoding.EncodeToString(entropy[:])
}

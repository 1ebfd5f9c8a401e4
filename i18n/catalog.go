// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/message/catalog"
)

// Catalog registers every scalar translation of s in b under the store's
// language tag, so that a message.Printer can render them. Lists and
// templates have no catalog form and are skipped.
//
// Translations are registered as literal text: a "%" in a value is escaped,
// so printing a key takes no arguments.
func (s *Store) Catalog(b *catalog.Builder) error {
	tag, err := s.Tag()
	if err != nil {
		return err
	}

	for _, key := range sortedKeys(s.scalars) {
		if err := b.SetString(tag, key, strings.ReplaceAll(s.scalars[key], "%", "%%")); err != nil {
			return fmt.Errorf("failed to add %q to catalog: %w", key, err)
		}
	}

	return nil
}

// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the locale used when none is configured.
const BaseLocale = "en"

// parseLocale converts a locale identifier to a canonical language tag.
// Both "pt-BR" and "pt_BR" are accepted.
func parseLocale(locale string) (language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	return tag, nil
}

// StrippedTag removes variants and extensions from tag, keeping base, script
// and region only.
func StrippedTag(tag language.Tag) language.Tag {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped
}

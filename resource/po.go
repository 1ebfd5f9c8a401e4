// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// poCodec stores each record as a gettext entry: msgid is the record key and
// msgstr is the value.
//
// gettext catalogues are unordered, so decoded streams are sorted by key.
//
// gotext writes strings between quotes without escaping backslashes, and
// unquotes them with Go rules when parsing. Keys and values are therefore
// escaped with strconv.Quote before they reach the catalogue.
type poCodec struct{}

func (poCodec) encode(w io.Writer, records Records) error {
	po := gotext.NewPo()
	domain := po.GetDomain()

	for _, rec := range records {
		domain.Set(poEscape(rec.Key), poEscape(rec.Value))
	}

	data, err := po.MarshalText()
	if err != nil {
		return fmt.Errorf("failed to encode PO records: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write PO records: %w", err)
	}

	return nil
}

func (poCodec) decode(r io.Reader) (Records, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PO records: %w", err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	translations := po.GetDomain().GetTranslations()

	out := make(Records, 0, len(translations))
	for id, tr := range translations {
		// The empty msgid carries the catalogue header.
		if id == "" {
			continue
		}

		// Trs[0] is read directly: Translation.Get falls back to the msgid
		// for empty translations.
		out = append(out, Record{Key: id, Value: tr.Trs[0]})
	}

	slices.SortFunc(out, func(a, b Record) int {
		return strings.Compare(a.Key, b.Key)
	})

	return out, nil
}

// poEscape returns s quoted with Go escapes, without the surrounding quotes.
// The result holds no raw line breaks or unescaped double quotes.
func poEscape(s string) string {
	q := strconv.Quote(s)

	return q[1 : len(q)-1]
}

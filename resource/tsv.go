// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// tsvCodec stores one record per line as key<TAB>value. Fields holding tabs,
// quotes or newlines are quoted using CSV rules.
//
// The CSV reader turns CRLF inside quoted fields into LF, so carriage
// returns are written as \r and backslashes as \\.
type tsvCodec struct{}

const tsvFields = 2

var (
	tsvEscaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	tsvUnescaper = strings.NewReplacer(`\\`, `\`, `\r`, "\r")
)

func (tsvCodec) encode(w io.Writer, records Records) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	for _, rec := range records {
		if err := cw.Write([]string{tsvEscaper.Replace(rec.Key), tsvEscaper.Replace(rec.Value)}); err != nil {
			return fmt.Errorf("failed to encode TSV record %q: %w", rec.Key, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush TSV records: %w", err)
	}

	return nil
}

func (tsvCodec) decode(r io.Reader) (Records, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = tsvFields
	cr.ReuseRecord = true

	var out Records

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return nil, fmt.Errorf("failed to decode TSV records: %w", err)
		}

		out = append(out, Record{Key: tsvUnescaper.Replace(fields[0]), Value: tsvUnescaper.Replace(fields[1])})
	}
}

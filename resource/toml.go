// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// tomlCodec stores a stream as an array of tables, which keeps record order:
//
//	[[record]]
//	key = "VALUE;greeting"
//	value = "hi"
type tomlCodec struct{}

type tomlDocument struct {
	Records []tomlRecord `toml:"record"`
}

type tomlRecord struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

func (tomlCodec) encode(w io.Writer, records Records) error {
	doc := tomlDocument{Records: make([]tomlRecord, 0, len(records))}
	for _, rec := range records {
		doc.Records = append(doc.Records, tomlRecord(rec))
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode TOML records: %w", err)
	}

	return nil
}

func (tomlCodec) decode(r io.Reader) (Records, error) {
	var doc tomlDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode TOML records: %w", err)
	}

	out := make(Records, 0, len(doc.Records))
	for _, rec := range doc.Records {
		out = append(out, Record(rec))
	}

	return out, nil
}

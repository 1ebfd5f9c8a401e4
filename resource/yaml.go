// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/token"
)

// yamlCodec stores a stream as a single ordered mapping from record key to value.
//
// Every key and value is written double-quoted. The encoder's own style
// choice leaves line breaks and trailing whitespace unquoted, which either
// changes the string or, for keys, produces a file that does not parse.
type yamlCodec struct{}

func (yamlCodec) encode(w io.Writer, records Records) error {
	items := make([]*ast.MappingValueNode, 0, len(records))
	for _, rec := range records {
		items = append(items, ast.MappingValue(yamlToken(""), yamlString(rec.Key), yamlString(rec.Value)))
	}

	doc := ast.Mapping(yamlToken(""), false, items...)

	if _, err := io.WriteString(w, doc.String()+"\n"); err != nil {
		return fmt.Errorf("failed to encode YAML records: %w", err)
	}

	return nil
}

func yamlToken(s string) *token.Token {
	return token.New(s, s, &token.Position{Line: 1, Column: 1})
}

// yamlString returns a double-quoted scalar holding s verbatim.
func yamlString(s string) *ast.StringNode {
	return ast.String(token.DoubleQuote(s, strconv.Quote(s), &token.Position{Line: 1, Column: 1}))
}

func (yamlCodec) decode(r io.Reader) (Records, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML records: %w", err)
	}

	var ms yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &ms, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to decode YAML records: %w", err)
	}

	out := make(Records, 0, len(ms))
	for _, item := range ms {
		out = append(out, Record{Key: scalarString(item.Key), Value: scalarString(item.Value)})
	}

	return out, nil
}

// scalarString renders a decoded YAML scalar. Hand-edited files may hold
// unquoted numbers or booleans where a string was meant.
func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

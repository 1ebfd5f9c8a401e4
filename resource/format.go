// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format names a physical record layout.
type Format string

// Supported formats.
const (
	FormatYAML   Format = "yaml"
	FormatPO     Format = "po"
	FormatTOML   Format = "toml"
	FormatTSV    Format = "tsv"
	FormatSQLite Format = "sqlite"
)

// CompressedExtension marks zstd compressed files.
const CompressedExtension = ".zst"

var extensions = map[string]Format{
	".yaml":   FormatYAML,
	".yml":    FormatYAML,
	".po":     FormatPO,
	".toml":   FormatTOML,
	".tsv":    FormatTSV,
	".db":     FormatSQLite,
	".sqlite": FormatSQLite,
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatYAML, FormatPO, FormatTOML, FormatTSV, FormatSQLite}
}

// Extension returns the canonical file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatPO:
		return ".po"
	case FormatTOML:
		return ".toml"
	case FormatTSV:
		return ".tsv"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f.Extension() != ""
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}

	return f, nil
}

// FormatFromPath derives the format of path from its extension and reports
// whether the file is zstd compressed.
func FormatFromPath(path string) (Format, bool, error) {
	name := strings.ToLower(filepath.Base(path))

	compressed := strings.HasSuffix(name, CompressedExtension)
	if compressed {
		name = strings.TrimSuffix(name, CompressedExtension)
	}

	f, ok := extensions[filepath.Ext(name)]
	if !ok {
		return "", false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if compressed && f == FormatSQLite {
		return "", false, fmt.Errorf("%w: compressed %s database %s", ErrUnsupportedFormat, f, path)
	}

	return f, compressed, nil
}

// TrimExtension strips the format extension, and the compression suffix if
// present, from the base name of path.
func TrimExtension(path string) string {
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), CompressedExtension) {
		name = name[:len(name)-len(CompressedExtension)]
	}

	return strings.TrimSuffix(name, filepath.Ext(name))
}

// streamCodec converts a whole record stream to and from bytes.
type streamCodec interface {
	encode(w io.Writer, records Records) error
	decode(r io.Reader) (Records, error)
}

func codecFor(f Format) (streamCodec, error) {
	switch f {
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatPO:
		return poCodec{}, nil
	case FormatTOML:
		return tomlCodec{}, nil
	case FormatTSV:
		return tsvCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a stream format", ErrUnsupportedFormat, string(f))
	}
}

// Encode writes records to w in format f. SQLite is not a stream format.
func Encode(w io.Writer, f Format, records Records) error {
	c, err := codecFor(f)
	if err != nil {
		return err
	}

	return c.encode(w, records)
}

// Decode reads a whole stream in format f from r.
func Decode(r io.Reader, f Format) (Records, error) {
	c, err := codecFor(f)
	if err != nil {
		return nil, err
	}

	return c.decode(r)
}

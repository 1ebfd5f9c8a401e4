// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() Records {
	return Records{
		{Key: "CULTURE;", Value: "en-US"},
		{Key: "VALUE;greeting", Value: "hi"},
		{Key: "VALUE;Color;Red", Value: "Rouge"},
		{Key: "LIST;colors", Value: "b;a;c"},
		{Key: "TEMPLATE;NotUnderstood;Name;Age", Value: "Huh?;Say again?"},
		{Key: "VALUE;numberish", Value: "42"},
		{Key: "VALUE;boolish", Value: "true"},
	}
}

func TestRecordsReader(t *testing.T) {
	t.Parallel()

	var rs Records
	for _, rec := range sampleRecords() {
		require.NoError(t, rs.Write(rec))
	}

	got, err := ReadAll(rs.Reader())
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	r := Records{}.Reader()
	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCopy(t *testing.T) {
	t.Parallel()

	var dst Records

	n, err := Copy(&dst, sampleRecords().Reader())
	require.NoError(t, err)
	assert.Equal(t, len(sampleRecords()), n)
	assert.Equal(t, sampleRecords(), dst)
}

func TestRecordsMap(t *testing.T) {
	t.Parallel()

	m := Records{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}.Map()
	assert.Equal(t, map[string]string{"a": "2"}, m)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path           string
		wantFormat     Format
		wantCompressed bool
		wantErr        bool
	}{
		{"locales/en.yaml", FormatYAML, false, false},
		{"locales/en.YML", FormatYAML, false, false},
		{"en.po", FormatPO, false, false},
		{"en.toml.zst", FormatTOML, true, false},
		{"en.tsv", FormatTSV, false, false},
		{"en.db", FormatSQLite, false, false},
		{"en.sqlite", FormatSQLite, false, false},
		{"en.db.zst", "", false, true},
		{"en.json", "", false, true},
		{"en", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			f, compressed, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, f)
			assert.Equal(t, tt.wantCompressed, compressed)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	for _, f := range Formats() {
		assert.True(t, f.Valid(), f)
	}
}

func TestTrimExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pt-BR", TrimExtension("/data/pt-BR.yaml"))
	assert.Equal(t, "en", TrimExtension("en.po.zst"))
}

func TestStreamCodecs(t *testing.T) {
	t.Parallel()

	ordered := append(sampleRecords(),
		Record{Key: "VALUE;multi", Value: "line one\nline two"},
		Record{Key: "VALUE;tabbed", Value: "a\tb \"quoted\""},
		Record{Key: "VALUE;empty", Value: ""},
	)

	for _, f := range []Format{FormatYAML, FormatTOML, FormatTSV} {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, ordered))

			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, ordered, got)
		})
	}
}

func TestPOCodecIsUnordered(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatPO, sampleRecords()))
	assert.Contains(t, buf.String(), `msgid "VALUE;greeting"`)

	got, err := Decode(&buf, FormatPO)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords().Map(), got.Map())
	assert.Len(t, got, len(sampleRecords()))
}

func specialRecords() Records {
	return Records{
		{Key: "CULTURE;", Value: "en"},
		{Key: "VALUE;path", Value: `C:\Users\me`},
		{Key: "VALUE;escaped", Value: `a\nb \t \\ \r`},
		{Key: "VALUE;crlf", Value: "a\r\nb\r"},
		{Key: "VALUE;multi\nline", Value: "x"},
		{Key: "VALUE;tab\tkey", Value: "trailing tab\t"},
		{Key: `VALUE;"quoted"`, Value: `"starts with a quote`},
		{Key: "VALUE;spaces", Value: "  both  "},
		{Key: "VALUE;yes", Value: "no"},
		{Key: "VALUE;control", Value: "bell\a esc\x1b"},
		{Key: "VALUE;unicode", Value: "caf\u00e9 \u2028 end"},
		{Key: "VALUE;empty", Value: ""},
	}
}

func TestSpecialCharactersRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("streams", func(t *testing.T) {
		t.Parallel()

		for _, f := range []Format{FormatYAML, FormatPO, FormatTOML, FormatTSV} {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, specialRecords()), f)

			got, err := Decode(&buf, f)
			require.NoError(t, err, f)
			assert.Equal(t, specialRecords().Map(), got.Map(), f)
		}
	})

	for _, name := range []string{"en.yaml", "en.po", "en.toml", "en.tsv", "en.yaml.zst", "en.po.zst", "en.tsv.zst", "en.db"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			writeAll(t, path, specialRecords())

			r, err := Open(path)
			require.NoError(t, err)

			got, err := ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			if f, _, _ := FormatFromPath(path); f == FormatPO {
				assert.Equal(t, specialRecords().Map(), got.Map())

				return
			}

			assert.Equal(t, specialRecords(), got)
		})
	}
}

func TestYAMLQuotesEveryString(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, Records{
		{Key: "VALUE;multi\nline", Value: "42"},
		{Key: "VALUE;plain", Value: "text"},
	}))

	assert.Equal(t, "\"VALUE;multi\\nline\": \"42\"\n\"VALUE;plain\": \"text\"\n", buf.String())
}

func TestTSVEscapesCarriageReturns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatTSV, Records{{Key: `VALUE;a\b`, Value: "x\r\ny"}}))
	assert.NotContains(t, buf.String(), "\r")

	got, err := Decode(&buf, FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, Records{{Key: `VALUE;a\b`, Value: "x\r\ny"}}, got)
}

func TestSQLiteIsNotAStreamFormat(t *testing.T) {
	t.Parallel()

	err := Encode(io.Discard, FormatSQLite, sampleRecords())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"en.yaml", "en.toml", "en.tsv", "en.yaml.zst", "en.tsv.zst", "en.db", "nested/dir/en.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			writeAll(t, path, sampleRecords())

			r, err := Open(path)
			require.NoError(t, err)

			got, err := ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			assert.Equal(t, sampleRecords(), got)
		})
	}
}

func TestPOFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "en.po.zst")
	writeAll(t, path, sampleRecords())

	r, err := Open(path)
	require.NoError(t, err)

	got, err := ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, sampleRecords().Map(), got.Map())
}

func TestCreateReplacesFile(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"en.yaml", "en.db"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			writeAll(t, path, sampleRecords())
			writeAll(t, path, Records{{Key: "CULTURE;", Value: "fr"}})

			r, err := Open(path)
			require.NoError(t, err)

			got, err := ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			assert.Equal(t, Records{{Key: "CULTURE;", Value: "fr"}}, got)
		})
	}
}

func TestAbortKeepsExistingFile(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"en.tsv", "en.db"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			writeAll(t, path, sampleRecords())

			w, err := Create(path)
			require.NoError(t, err)
			require.NoError(t, w.Write(Record{Key: "CULTURE;", Value: "de"}))

			aborter, ok := w.(Aborter)
			require.True(t, ok)
			require.NoError(t, aborter.Abort())
			require.NoError(t, w.Close())
			assert.ErrorIs(t, w.Write(Record{}), ErrClosed)

			r, err := Open(path)
			require.NoError(t, err)

			got, err := ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			assert.Equal(t, sampleRecords(), got)
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"missing.yaml", "missing.db"} {
		_, err := Open(filepath.Join(dir, name))
		assert.ErrorIs(t, err, os.ErrNotExist, name)
	}
}

func TestOpenUnsupported(t *testing.T) {
	t.Parallel()

	_, err := Open("en.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Create("en.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func writeAll(t *testing.T, path string, records Records) {
	t.Helper()

	w, err := Create(path)
	require.NoError(t, err)

	_, err = Copy(w, records.Reader())
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

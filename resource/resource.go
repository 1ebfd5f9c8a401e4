// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package resource moves flat, ordered record streams between translation stores
and their physical representations.

A stream is a sequence of [Record] values. [Reader] yields them in order and
reports [io.EOF] after the last one; [Writer] accepts them in order. The
package ships an in-memory stream ([Records]) and file formats selected by
extension through [Open] and [Create]:

	.yaml, .yml   ordered YAML mapping
	.po           gettext catalogue, record key as msgid
	.toml         [[record]] array of tables
	.tsv          tab separated key and value
	.db, .sqlite  SQLite database with a records table

Appending ".zst" to any format except SQLite compresses the file with zstd.
*/
package resource

import (
	"errors"
	"io"
)

var (
	// ErrUnsupportedFormat is returned for paths whose extension names no format.
	ErrUnsupportedFormat = errors.New("unsupported record format")

	// ErrClosed is returned when writing to a closed or aborted writer.
	ErrClosed = errors.New("record writer is closed")
)

// Record is one (key, value) pair of a stream.
type Record struct {
	Key   string
	Value string
}

// Reader yields records in stream order. Read returns io.EOF once the stream
// is exhausted.
type Reader interface {
	Read() (Record, error)
}

// Writer consumes records in stream order.
type Writer interface {
	Write(rec Record) error
}

// ReadCloser is a Reader that holds a resource.
type ReadCloser interface {
	Reader
	io.Closer
}

// WriteCloser is a Writer that holds a resource. Close flushes buffered
// records and commits them.
type WriteCloser interface {
	Writer
	io.Closer
}

// Aborter is implemented by writers that can discard everything written so
// far instead of committing it. After Abort, Close is a no-op.
type Aborter interface {
	Abort() error
}

// Records is an in-memory stream. A *Records is a Writer; use [Records.Reader]
// to read it back.
type Records []Record

// Write appends rec.
func (rs *Records) Write(rec Record) error {
	*rs = append(*rs, rec)

	return nil
}

// Reader returns a Reader over a snapshot of rs.
func (rs Records) Reader() Reader {
	return &recordsReader{records: rs}
}

// Map returns the records keyed by record key. Later records win.
func (rs Records) Map() map[string]string {
	m := make(map[string]string, len(rs))
	for _, rec := range rs {
		m[rec.Key] = rec.Value
	}

	return m
}

type recordsReader struct {
	records Records
	next    int
}

func (r *recordsReader) Read() (Record, error) {
	if r.next >= len(r.records) {
		return Record{}, io.EOF
	}

	rec := r.records[r.next]
	r.next++

	return rec, nil
}

func (r *recordsReader) Close() error {
	return nil
}

// ReadAll drains r into a Records slice.
func ReadAll(r Reader) (Records, error) {
	var out Records

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return out, err
		}

		out = append(out, rec)
	}
}

// Copy writes every record of src to dst and returns the number copied.
func Copy(dst Writer, src Reader) (int, error) {
	n := 0

	for {
		rec, err := src.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}

		if err != nil {
			return n, err
		}

		if err := dst.Write(rec); err != nil {
			return n, err
		}

		n++
	}
}

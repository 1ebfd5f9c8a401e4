// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Open opens the record file at path for reading. The format is taken from
// the file extension.
func Open(path string) (ReadCloser, error) {
	format, compressed, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		r, err := openSQLite(path)
		if err != nil {
			return nil, err
		}

		return r, nil
	}

	codec, err := codecFor(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- record files are chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f

	if compressed {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream %s: %w", path, err)
		}
		defer dec.Close()

		src = dec
	}

	records, err := codec.decode(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &recordsReader{records: records}, nil
}

// Create opens path for writing records in the format taken from its
// extension. Records are buffered and the file is replaced atomically when
// the writer is closed; an aborted writer leaves any existing file untouched.
func Create(path string) (WriteCloser, error) {
	format, compressed, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		w, err := createSQLite(path)
		if err != nil {
			return nil, err
		}

		return w, nil
	}

	codec, err := codecFor(format)
	if err != nil {
		return nil, err
	}

	return &fileWriter{path: path, codec: codec, compressed: compressed}, nil
}

// fileWriter buffers a whole stream and writes it on Close.
type fileWriter struct {
	path       string
	codec      streamCodec
	compressed bool
	records    Records
	done       bool
}

func (w *fileWriter) Write(rec Record) error {
	if w.done {
		return ErrClosed
	}

	w.records = append(w.records, rec)

	return nil
}

func (w *fileWriter) Abort() error {
	w.done = true
	w.records = nil

	return nil
}

func (w *fileWriter) Close() error {
	if w.done {
		return nil
	}

	w.done = true

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", w.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", w.path, err)
	}

	tmpName := tmp.Name()

	if err := w.encodeTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("failed to replace %s: %w", w.path, err)
	}

	return nil
}

func (w *fileWriter) encodeTo(dst io.Writer) error {
	if !w.compressed {
		return w.codec.encode(dst, w.records)
	}

	enc, err := zstd.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("failed to create zstd stream for %s: %w", w.path, err)
	}

	if err := w.codec.encode(enc, w.records); err != nil {
		return errors.Join(err, enc.Close())
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish zstd stream for %s: %w", w.path, err)
	}

	return nil
}

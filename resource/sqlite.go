// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	seq   INTEGER PRIMARY KEY,
	key   TEXT NOT NULL,
	value TEXT NOT NULL
);`

const dirPermissions = 0o755

// openDB opens the SQLite database at path and ensures the records table exists.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to initialize schema in %s: %w", path, err)
	}

	return db, nil
}

// sqliteWriter replaces the records table inside a single transaction.
// Nothing is visible to readers until Close commits.
type sqliteWriter struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
	seq  int64
	done bool
}

func createSQLite(path string) (*sqliteWriter, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to clear records: %w", err), tx.Rollback(), db.Close())
	}

	stmt, err := tx.Prepare(`INSERT INTO records (seq, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to prepare insert: %w", err), tx.Rollback(), db.Close())
	}

	return &sqliteWriter{db: db, tx: tx, stmt: stmt}, nil
}

func (w *sqliteWriter) Write(rec Record) error {
	if w.done {
		return ErrClosed
	}

	if _, err := w.stmt.Exec(w.seq, rec.Key, rec.Value); err != nil {
		return fmt.Errorf("failed to insert record %q: %w", rec.Key, err)
	}

	w.seq++

	return nil
}

func (w *sqliteWriter) Close() error {
	if w.done {
		return nil
	}

	w.done = true

	if err := w.stmt.Close(); err != nil {
		return errors.Join(err, w.tx.Rollback(), w.db.Close())
	}

	if err := w.tx.Commit(); err != nil {
		return errors.Join(fmt.Errorf("failed to commit records: %w", err), w.db.Close())
	}

	return w.db.Close()
}

func (w *sqliteWriter) Abort() error {
	if w.done {
		return nil
	}

	w.done = true

	return errors.Join(w.stmt.Close(), w.tx.Rollback(), w.db.Close())
}

// sqliteReader streams rows ordered by sequence number.
type sqliteReader struct {
	db   *sql.DB
	rows *sql.Rows
}

func openSQLite(path string) (*sqliteReader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT key, value FROM records ORDER BY seq`)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to query records: %w", err), db.Close())
	}

	return &sqliteReader{db: db, rows: rows}, nil
}

func (r *sqliteReader) Read() (Record, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return Record{}, fmt.Errorf("failed to read records: %w", err)
		}

		return Record{}, io.EOF
	}

	var rec Record
	if err := r.rows.Scan(&rec.Key, &rec.Value); err != nil {
		return Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	return rec, nil
}

func (r *sqliteReader) Close() error {
	return errors.Join(r.rows.Close(), r.db.Close())
}

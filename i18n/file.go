// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"fmt"

	"codeberg.org/locstore/locstore/resource"
)

// SaveFile writes s to path in the record format chosen by its extension.
// On failure any existing file at path is left as it was.
func (s *Store) SaveFile(path string) error {
	w, err := resource.Create(path)
	if err != nil {
		return err
	}

	if err := s.Save(w); err != nil {
		if a, ok := w.(resource.Aborter); ok {
			err = errors.Join(err, a.Abort())
		}

		return errors.Join(err, w.Close())
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

// LoadFile is [Store.Load] reading from the record file at path.
func (s *Store) LoadFile(path string) (loaded *Store, d Diff, err error) {
	r, err := resource.Open(path)
	if err != nil {
		return nil, Diff{}, err
	}

	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			loaded, d, err = nil, Diff{}, fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	loaded, d, err = s.Load(r)
	if err != nil {
		return nil, Diff{}, fmt.Errorf("%s: %w", path, err)
	}

	return loaded, d, nil
}

// ReadFile is [Read] reading from the record file at path.
func ReadFile(path string, opts ...Option) (*Store, error) {
	s, _, err := New("", opts...).LoadFile(path)

	return s, err
}

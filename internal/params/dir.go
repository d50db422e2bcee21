// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package params

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Dir stores each parameter as a file in one directory. Keys are hashed
// into file names so arbitrary key strings, path separators included,
// are safe.
type Dir struct {
	path string
}

var _ Client = (*Dir)(nil)

// NewDir creates the directory if needed and returns a store over it.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create parameter directory %q: %w", path, err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) file(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.path, hex.EncodeToString(sum[:])+".json")
}

func (d *Dir) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(d.file(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read parameter %q: %w", key, err)
	}
	return string(data), true, nil
}

func (d *Dir) Set(_ context.Context, key, value string) error {
	// Write-then-rename so a crash mid-write never leaves a torn value.
	target := d.file(key)
	tmp, err := os.CreateTemp(d.path, ".param-*")
	if err != nil {
		return fmt.Errorf("failed to write parameter %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write parameter %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write parameter %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to write parameter %q: %w", key, err)
	}
	return nil
}

func (d *Dir) Delete(_ context.Context, key string) error {
	err := os.Remove(d.file(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete parameter %q: %w", key, err)
	}
	return nil
}

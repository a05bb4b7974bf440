// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package credfile reads and writes the flat credential files the desktop
// application keeps next to the database: the "remember me" pair used for
// login auto-fill, and the bootstrap registry of accounts imported into the
// database on first start. Neither file is consulted for authentication
// decisions; the database is the single source of truth.
package credfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Remembered is the persisted "remember me" pair. Only the hash is stored,
// never the plaintext password.
type Remembered struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// RegistryEntry is one bootstrap account: username maps to a stored hash
// and role.
type RegistryEntry struct {
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// SaveRemembered writes the remember-me pair to path, atomically.
func SaveRemembered(path string, r Remembered) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding remember file: %w", err)
	}
	return writeAtomic(path, data)
}

// LoadRemembered reads the remember-me pair from path. ok is false when the
// file does not exist.
func LoadRemembered(path string) (r Remembered, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Remembered{}, false, nil
	}
	if err != nil {
		return Remembered{}, false, fmt.Errorf("reading remember file: %w", err)
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return Remembered{}, false, fmt.Errorf("decoding remember file: %w", err)
	}
	return r, true, nil
}

// ClearRemembered removes the remember-me file. Missing file is not an error.
func ClearRemembered(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing remember file: %w", err)
	}
	return nil
}

// LoadRegistry reads the bootstrap registry from path. A missing file
// yields an empty registry.
func LoadRegistry(path string) (map[string]RegistryEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]RegistryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bootstrap registry: %w", err)
	}

	registry := map[string]RegistryEntry{}
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("decoding bootstrap registry: %w", err)
	}
	return registry, nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it into place, so a crash never leaves a half-written file visible.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

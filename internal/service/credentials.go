// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/profdir/profdir/internal/auth"
	"github.com/profdir/profdir/internal/credfile"
	"github.com/profdir/profdir/internal/model"
	"github.com/profdir/profdir/internal/store"
)

// Credentials manages directory accounts: login verification, account
// administration, the remember-me file and the one-time bootstrap import.
type Credentials struct {
	db           *sql.DB
	queries      *store.Queries
	rememberPath string
}

// NewCredentials creates the credential service. rememberPath locates the
// remember-me file; empty disables remember-me persistence.
func NewCredentials(db *sql.DB, rememberPath string) *Credentials {
	return &Credentials{
		db:           db,
		queries:      store.New(db),
		rememberPath: rememberPath,
	}
}

// Verify checks a username/password pair and returns the account role on
// success. The username match is exact and case-sensitive. A wrong password
// and an unknown username both come back as ErrNotFound. Accounts still
// carrying a legacy SHA-256 digest are upgraded to argon2id on successful
// login.
func (s *Credentials) Verify(ctx context.Context, username, password string) (string, error) {
	if s.db == nil {
		return "", ErrUnavailable
	}

	user, err := s.queries.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	if auth.IsLegacyHash(user.PasswordHash) {
		if rehash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateUserPassword(ctx, username, rehash); err != nil {
				slog.Warn("failed to upgrade legacy password hash", "username", username, "error", err)
			} else {
				slog.Info("upgraded legacy password hash", "username", username)
			}
		}
	}

	return user.Role, nil
}

// Add creates a new account. The username must be unused, the password
// non-empty and the role one of model.RoleAdmin or model.RoleStudent.
func (s *Credentials) Add(ctx context.Context, username, password, email, role string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("username and password are required: %w", ErrInvalidInput)
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("role %q: %w", role, ErrInvalidInput)
	}

	if _, err := s.queries.GetUserByUsername(ctx, username); err == nil {
		return fmt.Errorf("user %q: %w", username, ErrConflict)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if _, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         role,
	}); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	slog.Info("added user", "username", username, "role", role)
	return nil
}

// Delete removes an account by username. ErrNotFound when no row matched.
func (s *Credentials) Delete(ctx context.Context, username string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	n, err := s.queries.DeleteUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	slog.Info("deleted user", "username", username)
	return nil
}

// List returns all accounts ordered by username ascending, without
// password hashes.
func (s *Credentials) List(ctx context.Context) ([]model.User, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	users, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// SaveRemembered persists the remember-me pair for login auto-fill.
func (s *Credentials) SaveRemembered(username, passwordHash string) error {
	if s.rememberPath == "" {
		return nil
	}
	return credfile.SaveRemembered(s.rememberPath, credfile.Remembered{
		Username:     username,
		PasswordHash: passwordHash,
	})
}

// LoadRemembered returns the stored remember-me pair, if any.
func (s *Credentials) LoadRemembered() (credfile.Remembered, bool, error) {
	if s.rememberPath == "" {
		return credfile.Remembered{}, false, nil
	}
	return credfile.LoadRemembered(s.rememberPath)
}

// ClearRemembered removes the remember-me file.
func (s *Credentials) ClearRemembered() error {
	if s.rememberPath == "" {
		return nil
	}
	return credfile.ClearRemembered(s.rememberPath)
}

// ImportBootstrap reads the flat-file account registry at path and inserts
// any accounts missing from the database, keeping their stored hashes and
// roles. Existing accounts are never overwritten; entries with unknown
// roles are skipped. Returns the number of accounts imported.
func (s *Credentials) ImportBootstrap(ctx context.Context, path string) (int, error) {
	if s.db == nil {
		return 0, ErrUnavailable
	}

	registry, err := credfile.LoadRegistry(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for username, entry := range registry {
		if username == "" || entry.PasswordHash == "" {
			continue
		}
		if !model.ValidRole(entry.Role) {
			slog.Warn("skipping bootstrap entry with unknown role", "username", username, "role", entry.Role)
			continue
		}

		if _, err := s.queries.GetUserByUsername(ctx, username); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return imported, fmt.Errorf("checking username %q: %w", username, err)
		}

		if _, err := s.queries.CreateUser(ctx, store.CreateUserParams{
			Username:     username,
			PasswordHash: entry.PasswordHash,
			Email:        "",
			Role:         entry.Role,
		}); err != nil {
			return imported, fmt.Errorf("importing user %q: %w", username, err)
		}
		imported++
	}

	if imported > 0 {
		slog.Info("imported bootstrap accounts", "count", imported)
	}
	return imported, nil
}

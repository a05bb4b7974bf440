// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/profdir/profdir/internal/model"
)

// CreateUserParams holds the fields for inserting a user row.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Email        string
	Role         string
}

// CreateUser inserts a new user and returns it with the assigned id.
// The username uniqueness constraint surfaces as a driver error here.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (username, password, email, role) VALUES (?, ?, ?, ?)`,
		arg.Username, arg.PasswordHash, arg.Email, arg.Role)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading insert id: %w", err)
	}
	return model.User{
		ID:           id,
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		Email:        arg.Email,
		Role:         arg.Role,
	}, nil
}

// GetUserByUsername returns the user with the exact username, including the
// stored password hash. Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx,
		`SELECT id, username, password, email, role FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role)
	return u, err
}

// ListUsers returns all users ordered by username ascending. Password
// hashes are not included.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, username, email, role FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUserByUsername deletes a user and returns the number of rows removed.
func (q *Queries) DeleteUserByUsername(ctx context.Context, username string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateUserPassword replaces the stored password hash for a username.
func (q *Queries) UpdateUserPassword(ctx context.Context, username, passwordHash string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE username = ?`, passwordHash, username)
	return err
}

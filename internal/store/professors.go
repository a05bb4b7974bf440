// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/profdir/profdir/internal/model"
	"github.com/profdir/profdir/internal/util"
)

// CreateProfessorParams holds the fields for inserting a professor row.
// Contact and Email are optional; an empty Picture is stored as the
// model.NoPicture sentinel.
type CreateProfessorParams struct {
	Name       string
	Department string
	Contact    string
	Email      string
	Picture    string
}

// CreateProfessor inserts a new professor and returns it with the assigned id.
func (q *Queries) CreateProfessor(ctx context.Context, arg CreateProfessorParams) (model.Professor, error) {
	picture := arg.Picture
	if picture == "" {
		picture = model.NoPicture
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO professors (name, department, contact, email, picture) VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Department,
		util.NullStringFromValue(arg.Contact),
		util.NullStringFromValue(arg.Email),
		picture)
	if err != nil {
		return model.Professor{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Professor{}, fmt.Errorf("reading insert id: %w", err)
	}
	return model.Professor{
		ID:         id,
		Name:       arg.Name,
		Department: arg.Department,
		Contact:    arg.Contact,
		Email:      arg.Email,
		Picture:    picture,
	}, nil
}

// GetProfessorByName returns the professor with the exact name.
// Returns sql.ErrNoRows when absent.
func (q *Queries) GetProfessorByName(ctx context.Context, name string) (model.Professor, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name, department, contact, email, picture FROM professors WHERE name = ?`, name)
	return scanProfessor(row)
}

// GetProfessorByID returns the professor with the given id.
func (q *Queries) GetProfessorByID(ctx context.Context, id int64) (model.Professor, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name, department, contact, email, picture FROM professors WHERE id = ?`, id)
	return scanProfessor(row)
}

// ListProfessors returns all professors ordered by name ascending.
func (q *Queries) ListProfessors(ctx context.Context) ([]model.Professor, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, department, contact, email, picture FROM professors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var professors []model.Professor
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, err
		}
		professors = append(professors, p)
	}
	return professors, rows.Err()
}

// UpdateProfessorParams holds the full replacement field set for a
// professor row, addressed by its id.
type UpdateProfessorParams struct {
	ID         int64
	Name       string
	Department string
	Contact    string
	Email      string
	Picture    string
}

// UpdateProfessor rewrites all mutable columns of a professor row.
func (q *Queries) UpdateProfessor(ctx context.Context, arg UpdateProfessorParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE professors SET name = ?, department = ?, contact = ?, email = ?, picture = ? WHERE id = ?`,
		arg.Name, arg.Department,
		util.NullStringFromValue(arg.Contact),
		util.NullStringFromValue(arg.Email),
		arg.Picture, arg.ID)
	return err
}

// UpdateProfessorPicture updates only the picture column, addressed by name.
// Returns the number of rows updated.
func (q *Queries) UpdateProfessorPicture(ctx context.Context, name, picture string) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE professors SET picture = ? WHERE name = ?`, picture, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteProfessorByID removes a professor row. Dependent schedules must be
// deleted first in the same transaction to satisfy the foreign key.
func (q *Queries) DeleteProfessorByID(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM professors WHERE id = ?`, id)
	return err
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfessor(row rowScanner) (model.Professor, error) {
	var p model.Professor
	var contact, email, picture sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Department, &contact, &email, &picture); err != nil {
		return model.Professor{}, err
	}
	p.Contact = contact.String
	p.Email = email.String
	p.Picture = util.StringOr(picture, model.NoPicture)
	return p, nil
}

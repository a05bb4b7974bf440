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

	"github.com/profdir/profdir/internal/imaging"
	"github.com/profdir/profdir/internal/model"
	"github.com/profdir/profdir/internal/store"
)

// Professors manages professor records, their picture files and change
// notifications to open views.
type Professors struct {
	db       *sql.DB
	queries  *store.Queries
	pictures *imaging.Processor
	notifier *Notifier
}

// NewProfessors creates the professor service. pictures may be nil when no
// picture directory is configured; notifier may be nil when no view cares
// about change events.
func NewProfessors(db *sql.DB, pictures *imaging.Processor, notifier *Notifier) *Professors {
	return &Professors{
		db:       db,
		queries:  store.New(db),
		pictures: pictures,
		notifier: notifier,
	}
}

// AddProfessorParams carries the fields for a new professor record.
// Contact, Email and Picture are optional.
type AddProfessorParams struct {
	Name       string
	Department string
	Contact    string
	Email      string
	Picture    string
}

// UpdateProfessorParams carries the replacement fields for an existing
// record, addressed by OldName. A nil Picture preserves the stored path.
type UpdateProfessorParams struct {
	OldName    string
	NewName    string
	Department string
	Contact    string
	Email      string
	Picture    *string
}

// All returns every professor ordered by name ascending.
func (s *Professors) All(ctx context.Context) ([]model.Professor, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	professors, err := s.queries.ListProfessors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing professors: %w", err)
	}
	return professors, nil
}

// ByName returns the professor with the exact name, or ErrNotFound.
func (s *Professors) ByName(ctx context.Context, name string) (model.Professor, error) {
	if s.db == nil {
		return model.Professor{}, ErrUnavailable
	}
	prof, err := s.queries.GetProfessorByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Professor{}, fmt.Errorf("professor %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return model.Professor{}, fmt.Errorf("looking up professor: %w", err)
	}
	return prof, nil
}

// Add creates a new professor record. Name and department are required;
// the name must be unused.
func (s *Professors) Add(ctx context.Context, arg AddProfessorParams) error {
	if s.db == nil {
		return ErrUnavailable
	}
	if strings.TrimSpace(arg.Name) == "" || strings.TrimSpace(arg.Department) == "" {
		return fmt.Errorf("name and department are required: %w", ErrInvalidInput)
	}

	if _, err := s.queries.GetProfessorByName(ctx, arg.Name); err == nil {
		return fmt.Errorf("professor %q: %w", arg.Name, ErrConflict)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking professor name: %w", err)
	}

	if _, err := s.queries.CreateProfessor(ctx, store.CreateProfessorParams{
		Name:       arg.Name,
		Department: arg.Department,
		Contact:    arg.Contact,
		Email:      arg.Email,
		Picture:    arg.Picture,
	}); err != nil {
		return fmt.Errorf("creating professor: %w", err)
	}

	slog.Info("added professor", "name", arg.Name, "department", arg.Department)
	s.publish(ProfessorEvent{Kind: ProfessorAdded, Name: arg.Name})
	return nil
}

// Update rewrites a professor record. Renames keep every schedule row with
// the record: the synthetic id is stable, so rows referencing it follow the
// new name automatically. The row update runs in a transaction so a failed
// rename can never leave a half-written record.
func (s *Professors) Update(ctx context.Context, arg UpdateProfessorParams) error {
	if s.db == nil {
		return ErrUnavailable
	}
	if strings.TrimSpace(arg.NewName) == "" || strings.TrimSpace(arg.Department) == "" {
		return fmt.Errorf("name and department are required: %w", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	current, err := q.GetProfessorByName(ctx, arg.OldName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("professor %q: %w", arg.OldName, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up professor: %w", err)
	}

	if arg.NewName != arg.OldName {
		if _, err := q.GetProfessorByName(ctx, arg.NewName); err == nil {
			return fmt.Errorf("professor %q: %w", arg.NewName, ErrConflict)
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking new name: %w", err)
		}
	}

	picture := current.Picture
	if arg.Picture != nil {
		picture = *arg.Picture
		if picture == "" {
			picture = model.NoPicture
		}
	}

	if err := q.UpdateProfessor(ctx, store.UpdateProfessorParams{
		ID:         current.ID,
		Name:       arg.NewName,
		Department: arg.Department,
		Contact:    arg.Contact,
		Email:      arg.Email,
		Picture:    picture,
	}); err != nil {
		return fmt.Errorf("updating professor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing update: %w", err)
	}

	ev := ProfessorEvent{Kind: ProfessorUpdated, Name: arg.NewName}
	if arg.NewName != arg.OldName {
		ev.OldName = arg.OldName
		slog.Info("renamed professor", "from", arg.OldName, "to", arg.NewName)
	}
	s.publish(ev)
	return nil
}

// UpdatePicture stores a new picture path for the professor and removes the
// previously stored file once the row points elsewhere.
func (s *Professors) UpdatePicture(ctx context.Context, name, picturePath string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	current, err := s.ByName(ctx, name)
	if err != nil {
		return err
	}

	n, err := s.queries.UpdateProfessorPicture(ctx, name, picturePath)
	if err != nil {
		return fmt.Errorf("updating picture: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("professor %q: %w", name, ErrNotFound)
	}

	if s.pictures != nil && current.HasPicture() && current.Picture != picturePath {
		if err := s.pictures.Remove(current.Picture); err != nil {
			slog.Warn("failed to remove old picture", "path", current.Picture, "error", err)
		}
	}

	s.publish(ProfessorEvent{Kind: ProfessorPictureChanged, Name: name})
	return nil
}

// SetPictureFromFile ingests the image at srcPath into the pictures
// directory and points the professor record at the stored copy.
func (s *Professors) SetPictureFromFile(ctx context.Context, name, srcPath string) (string, error) {
	if s.pictures == nil {
		return "", fmt.Errorf("no pictures directory configured: %w", ErrUnavailable)
	}
	if _, err := s.ByName(ctx, name); err != nil {
		return "", err
	}

	stored, err := s.pictures.Ingest(srcPath, name)
	if err != nil {
		return "", err
	}

	if err := s.UpdatePicture(ctx, name, stored); err != nil {
		_ = s.pictures.Remove(stored)
		return "", err
	}
	return stored, nil
}

// Delete removes a professor and all owned schedules in one transaction.
// Partial deletion is impossible: any failure rolls the whole operation
// back.
func (s *Professors) Delete(ctx context.Context, name string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	prof, err := q.GetProfessorByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("professor %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up professor: %w", err)
	}

	// Schedules first; the foreign key forbids the reverse order.
	if err := q.DeleteSchedulesForProfessor(ctx, prof.ID); err != nil {
		return fmt.Errorf("deleting schedules: %w", err)
	}
	if err := q.DeleteProfessorByID(ctx, prof.ID); err != nil {
		return fmt.Errorf("deleting professor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	if s.pictures != nil && prof.HasPicture() {
		if err := s.pictures.Remove(prof.Picture); err != nil {
			slog.Warn("failed to remove picture of deleted professor", "path", prof.Picture, "error", err)
		}
	}

	slog.Info("deleted professor", "name", name)
	s.publish(ProfessorEvent{Kind: ProfessorDeleted, Name: name})
	return nil
}

// Watch subscribes fn to professor change events.
func (s *Professors) Watch(fn func(ProfessorEvent)) (cancel func()) {
	if s.notifier == nil {
		return func() {}
	}
	return s.notifier.Subscribe(fn)
}

func (s *Professors) publish(ev ProfessorEvent) {
	if s.notifier != nil {
		s.notifier.publish(ev)
	}
}

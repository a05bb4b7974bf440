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

	"github.com/profdir/profdir/internal/model"
	"github.com/profdir/profdir/internal/store"
)

// Schedules manages class schedule entries.
type Schedules struct {
	db      *sql.DB
	queries *store.Queries
}

// NewSchedules creates the schedule service.
func NewSchedules(db *sql.DB) *Schedules {
	return &Schedules{
		db:      db,
		queries: store.New(db),
	}
}

// ForProfessor returns every schedule slot for one professor, annotated
// with the professor name and ordered by weekday then start time.
func (s *Schedules) ForProfessor(ctx context.Context, professorID int64) ([]model.Schedule, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	schedules, err := s.queries.ListSchedulesForProfessor(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	model.SortChronological(schedules)
	return schedules, nil
}

// ByDay returns all schedule slots, filtered to one weekday when day is
// non-empty, ordered by weekday then start time.
func (s *Schedules) ByDay(ctx context.Context, day string) ([]model.Schedule, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	var (
		schedules []model.Schedule
		err       error
	)
	if day == "" {
		schedules, err = s.queries.ListSchedules(ctx)
	} else {
		if !model.ValidDay(day) {
			return nil, fmt.Errorf("day %q: %w", day, ErrInvalidInput)
		}
		schedules, err = s.queries.ListSchedulesByDay(ctx, day)
	}
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	model.SortChronological(schedules)
	return schedules, nil
}

// Add inserts one schedule slot for a professor. All fields are required
// and the day must be a weekday name.
func (s *Schedules) Add(ctx context.Context, professorID int64, day, startTime, endTime, subject string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	if err := validateSlot(professorID, day, startTime, endTime, subject); err != nil {
		return err
	}

	if _, err := s.queries.CreateSchedule(ctx, store.CreateScheduleParams{
		ProfessorID: professorID,
		Day:         day,
		StartTime:   startTime,
		EndTime:     endTime,
		Subject:     subject,
	}); err != nil {
		return fmt.Errorf("creating schedule: %w", err)
	}

	slog.Info("added schedule", "professor_id", professorID, "day", day)
	return nil
}

// ReplaceForProfessor swaps the professor's entire schedule for entries,
// inside one transaction: the previous set is deleted and the replacement
// inserted, or nothing changes at all. An empty entries list legitimately
// clears the schedule.
func (s *Schedules) ReplaceForProfessor(ctx context.Context, professorName string, entries []model.ScheduleEntry) error {
	if s.db == nil {
		return ErrUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := s.queries.WithTx(tx)

	prof, err := q.GetProfessorByName(ctx, professorName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("professor %q: %w", professorName, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up professor: %w", err)
	}

	if err := q.DeleteSchedulesForProfessor(ctx, prof.ID); err != nil {
		return fmt.Errorf("clearing schedule: %w", err)
	}

	for _, entry := range entries {
		if err := validateSlot(prof.ID, entry.Day, entry.StartTime, entry.EndTime, entry.Subject); err != nil {
			return err
		}
		if _, err := q.CreateSchedule(ctx, store.CreateScheduleParams{
			ProfessorID: prof.ID,
			Day:         entry.Day,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Subject:     entry.Subject,
		}); err != nil {
			return fmt.Errorf("inserting schedule entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schedule replacement: %w", err)
	}

	slog.Info("replaced schedule", "professor", professorName, "entries", len(entries))
	return nil
}

// UpdateOne rewrites one schedule slot by id. ErrNotFound when no row
// matched.
func (s *Schedules) UpdateOne(ctx context.Context, scheduleID int64, day, startTime, endTime, subject string) error {
	if s.db == nil {
		return ErrUnavailable
	}
	if err := validateSlot(scheduleID, day, startTime, endTime, subject); err != nil {
		return err
	}

	n, err := s.queries.UpdateSchedule(ctx, store.UpdateScheduleParams{
		ID:        scheduleID,
		Day:       day,
		StartTime: startTime,
		EndTime:   endTime,
		Subject:   subject,
	})
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("schedule %d: %w", scheduleID, ErrNotFound)
	}
	return nil
}

// Delete removes one schedule slot by id. ErrNotFound when no row matched.
func (s *Schedules) Delete(ctx context.Context, scheduleID int64) error {
	if s.db == nil {
		return ErrUnavailable
	}

	n, err := s.queries.DeleteSchedule(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("schedule %d: %w", scheduleID, ErrNotFound)
	}
	return nil
}

func validateSlot(id int64, day, startTime, endTime, subject string) error {
	if id <= 0 {
		return fmt.Errorf("id is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(startTime) == "" || strings.TrimSpace(endTime) == "" || strings.TrimSpace(subject) == "" {
		return fmt.Errorf("start time, end time and subject are required: %w", ErrInvalidInput)
	}
	if !model.ValidDay(day) {
		return fmt.Errorf("day %q: %w", day, ErrInvalidInput)
	}
	return nil
}

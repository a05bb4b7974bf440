// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/profdir/profdir/internal/model"
)

// CreateScheduleParams holds the fields for inserting a schedule row.
type CreateScheduleParams struct {
	ProfessorID int64
	Day         string
	StartTime   string
	EndTime     string
	Subject     string
}

// CreateSchedule inserts a new schedule slot and returns it with the
// assigned id.
func (q *Queries) CreateSchedule(ctx context.Context, arg CreateScheduleParams) (model.Schedule, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO schedules (professor_id, day, start_time, end_time, subject) VALUES (?, ?, ?, ?, ?)`,
		arg.ProfessorID, arg.Day, arg.StartTime, arg.EndTime, arg.Subject)
	if err != nil {
		return model.Schedule{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Schedule{}, fmt.Errorf("reading insert id: %w", err)
	}
	return model.Schedule{
		ID:          id,
		ProfessorID: arg.ProfessorID,
		Day:         arg.Day,
		StartTime:   arg.StartTime,
		EndTime:     arg.EndTime,
		Subject:     arg.Subject,
	}, nil
}

const scheduleJoin = `
SELECT s.id, s.professor_id, p.name, s.day, s.start_time, s.end_time, s.subject
FROM schedules s
JOIN professors p ON s.professor_id = p.id`

// ListSchedulesForProfessor returns every schedule slot for one professor,
// annotated with the professor name. Ordering is applied by the caller.
func (q *Queries) ListSchedulesForProfessor(ctx context.Context, professorID int64) ([]model.Schedule, error) {
	rows, err := q.db.QueryContext(ctx, scheduleJoin+` WHERE s.professor_id = ?`, professorID)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// ListSchedules returns all schedule slots, annotated with professor names.
func (q *Queries) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	rows, err := q.db.QueryContext(ctx, scheduleJoin)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// ListSchedulesByDay returns all schedule slots for one weekday.
func (q *Queries) ListSchedulesByDay(ctx context.Context, day string) ([]model.Schedule, error) {
	rows, err := q.db.QueryContext(ctx, scheduleJoin+` WHERE s.day = ?`, day)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// UpdateScheduleParams holds the replacement fields for one schedule row.
type UpdateScheduleParams struct {
	ID        int64
	Day       string
	StartTime string
	EndTime   string
	Subject   string
}

// UpdateSchedule rewrites one schedule row by id and returns the number of
// rows updated.
func (q *Queries) UpdateSchedule(ctx context.Context, arg UpdateScheduleParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE schedules SET day = ?, start_time = ?, end_time = ?, subject = ? WHERE id = ?`,
		arg.Day, arg.StartTime, arg.EndTime, arg.Subject, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteSchedule removes one schedule row by id and returns the number of
// rows removed.
func (q *Queries) DeleteSchedule(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteSchedulesForProfessor removes every schedule row owned by a
// professor.
func (q *Queries) DeleteSchedulesForProfessor(ctx context.Context, professorID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM schedules WHERE professor_id = ?`, professorID)
	return err
}

func collectSchedules(rows *sql.Rows) ([]model.Schedule, error) {
	defer func() { _ = rows.Close() }()

	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.ProfessorID, &s.ProfessorName, &s.Day, &s.StartTime, &s.EndTime, &s.Subject); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

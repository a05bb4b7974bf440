// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the directory's business operations on top of
// the store layer: credential management, professor records and class
// schedules. Every operation reports failures through the sentinel errors
// below so callers can tell "not found" from "conflict" from "storage
// unavailable" with errors.Is.
package service

import (
	"errors"
)

var (
	// ErrNotFound is returned when the addressed user, professor or
	// schedule row does not exist. Verify also returns it for a wrong
	// password, so login failures don't reveal which part was wrong.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness rule would be violated,
	// such as a duplicate username or professor name.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput is returned when a required field is empty or an
	// enumerated value is out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable is returned when the database handle is missing,
	// typically because opening the file failed at startup.
	ErrUnavailable = errors.New("storage unavailable")
)

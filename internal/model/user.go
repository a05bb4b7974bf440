// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain types for the professor directory:
// users, professors and their weekly class schedules.
package model

// User roles. The directory only distinguishes administrators from students.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ValidRole reports whether role is one of the supported user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// User represents a directory account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose in JSON
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// NoPicture is the stored sentinel meaning "use the default avatar".
// Kept for compatibility with databases written by earlier releases.
const NoPicture = "N/A"

// Professor represents one directory entry. Name doubles as a practical
// uniqueness key: every lookup and cascade in the service layer is keyed
// by it, so the schema enforces UNIQUE(name).
type Professor struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Contact    string `json:"contact,omitempty"`
	Email      string `json:"email,omitempty"`
	Picture    string `json:"picture"`
}

// HasPicture returns true if the professor has a stored picture path
// rather than the sentinel value.
func (p *Professor) HasPicture() bool {
	return p.Picture != "" && p.Picture != NoPicture
}

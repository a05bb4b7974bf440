// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekdays lists the seven weekday names in display order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the position of day within Weekdays, or -1 for an
// unrecognized name. Matching is case-insensitive.
func DayIndex(day string) int {
	for i, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return i
		}
	}
	return -1
}

// ValidDay reports whether day is one of the seven weekday names.
func ValidDay(day string) bool {
	return DayIndex(day) >= 0
}

// Schedule represents one class slot for a professor. ProfessorName is
// populated on reads via a join, for display convenience.
type Schedule struct {
	ID            int64  `json:"id"`
	ProfessorID   int64  `json:"professor_id"`
	ProfessorName string `json:"professor_name,omitempty"`
	Day           string `json:"day"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Subject       string `json:"subject"`
}

// ScheduleEntry is the input shape for bulk schedule replacement.
type ScheduleEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subject   string `json:"subject"`
}

// clockLayouts covers the formats schedule times are commonly entered in.
var clockLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseClockTime parses a wall-clock string such as "9:00 AM" and returns
// minutes since midnight. Lowercase meridiems and a missing space before
// AM/PM are accepted.
func ParseClockTime(s string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized clock time %q", s)
}

// SortChronological orders schedules by weekday then by parsed start time,
// so "9:00 AM" sorts before "10:00 AM". Unparseable times and unknown days
// sort last, falling back to string comparison to keep the order stable.
func SortChronological(schedules []Schedule) {
	sort.SliceStable(schedules, func(i, j int) bool {
		di, dj := sortableDay(schedules[i].Day), sortableDay(schedules[j].Day)
		if di != dj {
			return di < dj
		}
		ti, errI := ParseClockTime(schedules[i].StartTime)
		tj, errJ := ParseClockTime(schedules[j].StartTime)
		switch {
		case errI == nil && errJ == nil:
			return ti < tj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return schedules[i].StartTime < schedules[j].StartTime
		}
	})
}

func sortableDay(day string) int {
	if i := DayIndex(day); i >= 0 {
		return i
	}
	return len(Weekdays)
}

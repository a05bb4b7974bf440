package model

import (
	"testing"
)

func TestDayIndex(t *testing.T) {
	tests := []struct {
		day  string
		want int
	}{
		{"Monday", 0},
		{"monday", 0},
		{"SUNDAY", 6},
		{"Friday", 4},
		{"Mon", -1},
		{"", -1},
		{"Someday", -1},
	}

	for _, tt := range tests {
		if got := DayIndex(tt.day); got != tt.want {
			t.Errorf("DayIndex(%q) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"9:00 AM", 9 * 60, false},
		{"10:00 AM", 10 * 60, false},
		{"12:00 PM", 12 * 60, false},
		{"12:30 AM", 30, false},
		{"1:15pm", 13*60 + 15, false},
		{" 7:45 PM ", 19*60 + 45, false},
		{"14:05", 14*60 + 5, false},
		{"", 0, true},
		{"noon", 0, true},
		{"25:00", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSortChronological(t *testing.T) {
	schedules := []Schedule{
		{Day: "Wednesday", StartTime: "8:00 AM", Subject: "Networks"},
		{Day: "Monday", StartTime: "10:00 AM", Subject: "Algorithms"},
		{Day: "Monday", StartTime: "9:00 AM", Subject: "Databases"},
		{Day: "Monday", StartTime: "1:00 PM", Subject: "Compilers"},
	}

	SortChronological(schedules)

	want := []string{"Databases", "Algorithms", "Compilers", "Networks"}
	for i, subject := range want {
		if schedules[i].Subject != subject {
			t.Fatalf("position %d = %q, want %q (order %v)", i, schedules[i].Subject, subject, schedules)
		}
	}
}

// Lexical ordering would put "10:00 AM" before "9:00 AM"; the chronological
// sort must not.
func TestSortChronologicalNotLexical(t *testing.T) {
	schedules := []Schedule{
		{Day: "Friday", StartTime: "10:00 AM"},
		{Day: "Friday", StartTime: "9:00 AM"},
	}

	SortChronological(schedules)

	if schedules[0].StartTime != "9:00 AM" {
		t.Errorf("first slot = %q, want 9:00 AM", schedules[0].StartTime)
	}
}

func TestSortChronologicalUnparseableLast(t *testing.T) {
	schedules := []Schedule{
		{Day: "Monday", StartTime: "TBA"},
		{Day: "Monday", StartTime: "11:00 AM"},
	}

	SortChronological(schedules)

	if schedules[0].StartTime != "11:00 AM" {
		t.Errorf("parseable time should sort first, got %q", schedules[0].StartTime)
	}
}

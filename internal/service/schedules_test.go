package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profdir/profdir/internal/model"
	"github.com/profdir/profdir/internal/testutil"
)

func addProfessor(t *testing.T, profs *Professors, name string) model.Professor {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, profs.Add(ctx, AddProfessorParams{Name: name, Department: "CS"}))
	prof, err := profs.ByName(ctx, name)
	require.NoError(t, err)
	return prof
}

func TestSchedulesAddValidation(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	prof := addProfessor(t, profs, "Dr. V")

	tests := []struct {
		name        string
		professorID int64
		day         string
		start, end  string
		subject     string
	}{
		{"zero professor id", 0, "Monday", "9:00 AM", "10:00 AM", "Math"},
		{"empty day", prof.ID, "", "9:00 AM", "10:00 AM", "Math"},
		{"bad day", prof.ID, "Funday", "9:00 AM", "10:00 AM", "Math"},
		{"empty start", prof.ID, "Monday", "", "10:00 AM", "Math"},
		{"empty end", prof.ID, "Monday", "9:00 AM", "", "Math"},
		{"empty subject", prof.ID, "Monday", "9:00 AM", "10:00 AM", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scheds.Add(ctx, tt.professorID, tt.day, tt.start, tt.end, tt.subject)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSchedulesForProfessorOrdering(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	prof := addProfessor(t, profs, "Dr. Order")

	// Inserted out of order; "10:00 AM" would sort before "9:00 AM"
	// lexically.
	slots := []struct {
		day, start, end, subject string
	}{
		{"Tuesday", "8:00 AM", "9:00 AM", "Early Tuesday"},
		{"Monday", "10:00 AM", "11:00 AM", "Late Monday"},
		{"Monday", "9:00 AM", "10:00 AM", "Early Monday"},
	}
	for _, s := range slots {
		require.NoError(t, scheds.Add(ctx, prof.ID, s.day, s.start, s.end, s.subject))
	}

	got, err := scheds.ForProfessor(ctx, prof.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Early Monday", got[0].Subject)
	assert.Equal(t, "Late Monday", got[1].Subject)
	assert.Equal(t, "Early Tuesday", got[2].Subject)
	for _, s := range got {
		assert.Equal(t, "Dr. Order", s.ProfessorName)
	}
}

func TestSchedulesByDay(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	a := addProfessor(t, profs, "Dr. A")
	b := addProfessor(t, profs, "Dr. B")

	require.NoError(t, scheds.Add(ctx, a.ID, "Monday", "9:00 AM", "10:00 AM", "Math"))
	require.NoError(t, scheds.Add(ctx, b.ID, "Monday", "8:00 AM", "9:00 AM", "Physics"))
	require.NoError(t, scheds.Add(ctx, a.ID, "Friday", "1:00 PM", "2:00 PM", "Lab"))

	monday, err := scheds.ByDay(ctx, "Monday")
	require.NoError(t, err)
	require.Len(t, monday, 2)
	assert.Equal(t, "Physics", monday[0].Subject) // 8:00 before 9:00

	all, err := scheds.ByDay(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Monday", all[0].Day)
	assert.Equal(t, "Friday", all[2].Day)

	_, err = scheds.ByDay(ctx, "Caturday")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchedulesReplaceForProfessor(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	prof := addProfessor(t, profs, "Dr. Swap")

	require.NoError(t, scheds.Add(ctx, prof.ID, "Monday", "9:00 AM", "10:00 AM", "Old Class"))

	replacement := []model.ScheduleEntry{
		{Day: "Wednesday", StartTime: "10:00 AM", EndTime: "11:00 AM", Subject: "New One"},
		{Day: "Thursday", StartTime: "2:00 PM", EndTime: "3:00 PM", Subject: "New Two"},
	}
	require.NoError(t, scheds.ReplaceForProfessor(ctx, "Dr. Swap", replacement))

	got, err := scheds.ForProfessor(ctx, prof.ID)
	require.NoError(t, err)

	var subjects []string
	for _, s := range got {
		subjects = append(subjects, s.Subject)
	}
	assert.ElementsMatch(t, []string{"New One", "New Two"}, subjects)
}

func TestSchedulesReplaceWithEmptyListClears(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	prof := addProfessor(t, profs, "Dr. Clear")

	require.NoError(t, scheds.Add(ctx, prof.ID, "Monday", "9:00 AM", "10:00 AM", "Math"))
	require.NoError(t, scheds.ReplaceForProfessor(ctx, "Dr. Clear", nil))

	got, err := scheds.ForProfessor(ctx, prof.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSchedulesReplaceRollsBackOnInvalidEntry(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	prof := addProfessor(t, profs, "Dr. Keep")

	require.NoError(t, scheds.Add(ctx, prof.ID, "Monday", "9:00 AM", "10:00 AM", "Survivor"))

	bad := []model.ScheduleEntry{
		{Day: "Tuesday", StartTime: "9:00 AM", EndTime: "10:00 AM", Subject: "Fine"},
		{Day: "Noday", StartTime: "9:00 AM", EndTime: "10:00 AM", Subject: "Broken"},
	}
	err := scheds.ReplaceForProfessor(ctx, "Dr. Keep", bad)
	require.ErrorIs(t, err, ErrInvalidInput)

	// The prior schedule set is intact.
	got, err := scheds.ForProfessor(ctx, prof.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Survivor", got[0].Subject)
}

func TestSchedulesReplaceUnknownProfessor(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	scheds := NewSchedules(db)
	err := scheds.ReplaceForProfessor(context.Background(), "Nobody", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedulesUpdateOneAndDelete(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	profs := NewProfessors(db, nil, nil)
	scheds := NewSchedules(db)
	prof := addProfessor(t, profs, "Dr. One")

	require.NoError(t, scheds.Add(ctx, prof.ID, "Monday", "9:00 AM", "10:00 AM", "Math"))
	got, err := scheds.ForProfessor(ctx, prof.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	id := got[0].ID

	require.NoError(t, scheds.UpdateOne(ctx, id, "Friday", "3:00 PM", "4:00 PM", "Seminar"))
	got, err = scheds.ForProfessor(ctx, prof.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Friday", got[0].Day)
	assert.Equal(t, "Seminar", got[0].Subject)

	require.NoError(t, scheds.Delete(ctx, id))
	assert.ErrorIs(t, scheds.Delete(ctx, id), ErrNotFound)

	err = scheds.UpdateOne(ctx, id, "Monday", "9:00 AM", "10:00 AM", "Math")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedulesUnavailable(t *testing.T) {
	scheds := NewSchedules(nil)
	ctx := context.Background()

	if _, err := scheds.ForProfessor(ctx, 1); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ForProfessor err = %v, want ErrUnavailable", err)
	}
	if err := scheds.Add(ctx, 1, "Monday", "9:00 AM", "10:00 AM", "Math"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Add err = %v, want ErrUnavailable", err)
	}
}

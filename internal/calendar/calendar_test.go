package calendar

import (
	"testing"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	month, err := ParseMonth("2024-01")
	require.NoError(t, err)

	tasks := []*model.Task{
		{ID: 1, Title: "Project Deadline", DueDate: "2024-01-25"},
		{ID: 2, Title: "Next month", DueDate: "2024-02-01"},
		{ID: 3, Title: "No date"},
		{ID: 4, Title: "Same day", DueDate: "2024-01-22T09:00:00Z"},
	}
	employees := []*model.Employee{
		{ID: 7, FirstName: "Sarah", LastName: "Johnson", StartDate: "2024-01-22"},
		{ID: 8, FirstName: "Old", LastName: "Hire", StartDate: "2019-01-22"},
		{ID: 9, FirstName: "Bad", LastName: "Date", StartDate: "soon"},
	}

	events := Build(month, tasks, employees)
	require.Len(t, events, 3)

	assert.Equal(t, Event{ID: "employee-7", Title: "Onboarding - Sarah Johnson", Date: "2024-01-22", Type: EventOnboarding, Color: "success", RecordID: 7}, events[0])
	assert.Equal(t, "task-4", events[1].ID)
	assert.Equal(t, EventDeadline, events[1].Type)
	assert.Equal(t, "2024-01-25", events[2].Date)
}

func TestBuildEmpty(t *testing.T) {
	events := Build(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-11")
	require.NoError(t, err)
	assert.Equal(t, time.November, m.Month())

	_, err = ParseMonth("2024-13")
	assert.Error(t, err)
	_, err = ParseMonth("November")
	assert.Error(t, err)
}

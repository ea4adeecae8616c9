// Package calendar derives the events shown on the monthly calendar from
// task due dates and employee start dates.
package calendar

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
)

// EventType classifies a calendar entry
type EventType string

const (
	EventDeadline   EventType = "deadline"
	EventOnboarding EventType = "onboarding"
)

// MonthLayout is the format of the month parameter
const MonthLayout = "2006-01"

// Event is one dated entry on the calendar
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     string    `json:"date"`
	Type     EventType `json:"type"`
	Color    string    `json:"color"`
	RecordID uint      `json:"record_id"`
}

// ParseMonth parses a YYYY-MM string into the first instant of that month in UTC
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return t, nil
}

// Build returns the events that fall in the month starting at month, ordered
// by date. Records whose date does not parse are skipped.
func Build(month time.Time, tasks []*model.Task, employees []*model.Employee) []Event {
	year, mon := month.Year(), month.Month()
	inMonth := func(s string) (time.Time, bool) {
		t, ok := query.ParseDate(s)
		if !ok || t.Year() != year || t.Month() != mon {
			return time.Time{}, false
		}
		return t, true
	}

	type dated struct {
		at    time.Time
		event Event
	}
	var found []dated

	for _, t := range tasks {
		if at, ok := inMonth(t.DueDate); ok {
			found = append(found, dated{at, Event{
				ID:       fmt.Sprintf("task-%d", t.ID),
				Title:    t.Title,
				Date:     at.Format(time.DateOnly),
				Type:     EventDeadline,
				Color:    "error",
				RecordID: t.ID,
			}})
		}
	}
	for _, e := range employees {
		if at, ok := inMonth(e.StartDate); ok {
			found = append(found, dated{at, Event{
				ID:       fmt.Sprintf("employee-%d", e.ID),
				Title:    "Onboarding - " + e.DisplayName(),
				Date:     at.Format(time.DateOnly),
				Type:     EventOnboarding,
				Color:    "success",
				RecordID: e.ID,
			}})
		}
	}

	slices.SortStableFunc(found, func(a, b dated) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.event.ID, b.event.ID)
	})

	events := make([]Event, 0, len(found))
	for _, d := range found {
		events = append(events, d.event)
	}
	return events
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/calendar"
	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartments(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/departments", map[string]any{"name": "Engineering"})
	require.Equal(t, http.StatusCreated, rec.Code)
	eng := decode[model.Department](t, rec)

	rec = s.do(t, http.MethodPost, "/api/departments", map[string]any{"name": "engineering"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/departments", map[string]any{"name": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/departments", map[string]any{"name": "People"})
	require.Equal(t, http.StatusCreated, rec.Code)
	people := decode[model.Department](t, rec)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/departments/%d", people.ID), map[string]any{"name": "Engineering"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/departments/%d", people.ID), map[string]any{"name": "People Ops", "parent_dept_id": people.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/departments/%d", people.ID), map[string]any{"name": "People Ops", "parent_dept_id": eng.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Department](t, rec)
	assert.Equal(t, "People Ops", updated.Name)
	require.NotNil(t, updated.ParentDeptID)
	assert.Equal(t, eng.ID, *updated.ParentDeptID)

	s.seedEmployees(t,
		model.Employee{FirstName: "Zoe", LastName: "A", DepartmentID: eng.ID},
		model.Employee{FirstName: "Al", LastName: "B", DepartmentID: people.ID},
		model.Employee{FirstName: "Ben", LastName: "C", DepartmentID: eng.ID},
	)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/departments/%d/employees?sort=name", eng.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Ben", "Zoe"}, firstNames(decode[[]model.Employee](t, rec)))

	rec = s.do(t, http.MethodGet, "/api/departments/99/employees", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/departments/%d", eng.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/departments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Department](t, rec), 2)

	rec = s.do(t, http.MethodDelete, "/api/departments/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/tasks", map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/tasks", map[string]any{"title": "X", "status": "blocked"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, body := range []map[string]any{
		{"title": "Quarterly report", "description": "Finance", "due_date": "2024-03-31", "assignee_id": 1},
		{"title": "Onboard new hire", "due_date": "2024-02-15", "status": "completed", "assignee_id": 2},
		{"title": "Update handbook", "description": "Report on remote work", "status": "in-progress", "assignee_id": 1},
	} {
		rec = s.do(t, http.MethodPost, "/api/tasks", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[model.Task](t, rec)
	assert.Equal(t, model.TaskStatusPending, first.Status)
	assert.Equal(t, "Quarterly report", first.Name)

	titles := func(tasks []model.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.Title)
		}
		return out
	}

	rec = s.do(t, http.MethodGet, "/api/tasks?keywords=report&sort=due_date&direction=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Update handbook", "Quarterly report"}, titles(decode[[]model.Task](t, rec)))

	rec = s.do(t, http.MethodGet, "/api/tasks?assignee_id=1&status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Quarterly report"}, titles(decode[[]model.Task](t, rec)))

	rec = s.do(t, http.MethodPut, "/api/tasks/1", map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/tasks/1", map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TaskStatusCompleted, decode[model.Task](t, rec).Status)

	rec = s.do(t, http.MethodPut, "/api/tasks/1", map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/tasks/3", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/tasks/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", errorMessage(t, rec))
}

func TestReviews(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/reviews", map[string]any{"period": "2024"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/reviews", `{"name":"Amy 2024","employee_id":1,"period":"2024","ratings":{"technical":5}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decode[model.Review](t, rec)
	assert.Equal(t, model.ReviewStatusPending, review.Status)
	assert.JSONEq(t, `{"technical":5}`, string(review.Ratings))

	rec = s.do(t, http.MethodPost, "/api/reviews", map[string]any{"employee_id": 2, "status": "completed"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/reviews?employee_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]model.Review](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, review.ID, listed[0].ID)

	rec = s.do(t, http.MethodGet, "/api/reviews?status=completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Review](t, rec), 1)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/reviews/%d", review.ID), `{"status":"submitted","ratings":{"technical":4}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Review](t, rec)
	assert.Equal(t, model.ReviewStatusSubmitted, updated.Status)
	assert.JSONEq(t, `{"technical":4}`, string(updated.Ratings))
	assert.Equal(t, "2024", updated.Period)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", review.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	s.seedEmployees(t, model.Employee{FirstName: "A"}, model.Employee{FirstName: "B"})
	_, err := s.repos.Departments.Create(ctx, &model.Department{Name: "Eng"})
	require.NoError(t, err)
	for _, status := range []string{model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted} {
		_, err := s.repos.Tasks.Create(ctx, &model.Task{Title: status, Status: status})
		require.NoError(t, err)
	}
	for _, status := range []string{model.ReviewStatusPending, model.ReviewStatusCompleted, model.ReviewStatusPending} {
		_, err := s.repos.Reviews.Create(ctx, &model.Review{Status: status})
		require.NoError(t, err)
	}

	rec := s.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DashboardStats{
		TotalEmployees:   2,
		TotalDepartments: 1,
		ActiveTasks:      2,
		PendingReviews:   2,
	}, decode[DashboardStats](t, rec))
}

func TestCalendar(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	s.seedEmployees(t, model.Employee{FirstName: "Sarah", LastName: "Johnson", StartDate: "2024-01-22"})
	_, err := s.repos.Tasks.Create(ctx, &model.Task{Title: "Project Deadline", DueDate: "2024-01-25"})
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/calendar?month=2024-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Month  string           `json:"month"`
		Events []calendar.Event `json:"events"`
	}](t, rec)
	assert.Equal(t, "2024-01", body.Month)
	require.Len(t, body.Events, 2)
	assert.Equal(t, calendar.EventOnboarding, body.Events[0].Type)
	assert.Equal(t, calendar.EventDeadline, body.Events[1].Type)

	rec = s.do(t, http.MethodGet, "/api/calendar?month=January", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarDefaultsToCurrentMonth(t *testing.T) {
	repos := repository.NewMemoryRepositories(0)
	h := NewDashboardHandler(repos)
	h.now = func() time.Time { return time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC) }

	_, err := repos.Tasks.Create(context.Background(), &model.Task{Title: "Payroll", DueDate: "2024-02-28"})
	require.NoError(t, err)

	s := newTestServer(t, nil)
	s.e.GET("/calendar-now", h.Calendar)
	rec := s.do(t, http.MethodGet, "/calendar-now", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"month":"2024-02"`)
	assert.Contains(t, rec.Body.String(), "Payroll")
}

func TestDashboardSurfacesRepositoryErrors(t *testing.T) {
	repos := repository.NewMemoryRepositories(time.Hour)
	h := NewDashboardHandler(repos)

	s := newTestServer(t, nil)
	s.e.GET("/stats-slow", h.Stats)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := newRequestWithContext(t, ctx, http.MethodGet, "/stats-slow")
	rec := serve(s, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestErrorStatusForRecordErrors(t *testing.T) {
	status, msg := errorStatus(fmt.Errorf("employee 3: %w", repository.ErrNotFound), "Employee not found", "failed")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Employee not found", msg)

	status, _ = errorStatus(fmt.Errorf("%w: sort", query.ErrInvalidInput), "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, msg = errorStatus(fmt.Errorf("get: %w: %w", repository.ErrRepository, context.DeadlineExceeded), "", "Failed")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed", msg)
}

package handler

import (
	"net/http"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/calendar"
	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardStats are the headline numbers of the dashboard
type DashboardStats struct {
	TotalEmployees   int `json:"total_employees"`
	TotalDepartments int `json:"total_departments"`
	ActiveTasks      int `json:"active_tasks"`
	PendingReviews   int `json:"pending_reviews"`
}

// DashboardHandler serves the dashboard and calendar views
type DashboardHandler struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewDashboardHandler creates the dashboard handler
func NewDashboardHandler(repos *repository.Repositories) *DashboardHandler {
	return &DashboardHandler{repos: repos, now: time.Now}
}

// Stats loads the four collections concurrently and counts them
func (h *DashboardHandler) Stats(c echo.Context) error {
	log := logger.FromContext(c)

	var (
		employees   []*model.Employee
		departments []*model.Department
		tasks       []*model.Task
		reviews     []*model.Review
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		employees, err = h.repos.Employees.GetAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		departments, err = h.repos.Departments.GetAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = h.repos.Tasks.GetAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = h.repos.Reviews.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return respondError(c, log, err, "Record not found", "Failed to load dashboard statistics")
	}

	stats := DashboardStats{
		TotalEmployees:   len(employees),
		TotalDepartments: len(departments),
	}
	for _, t := range tasks {
		if t.IsActive() {
			stats.ActiveTasks++
		}
	}
	for _, r := range reviews {
		if r.Status == model.ReviewStatusPending {
			stats.PendingReviews++
		}
	}

	log.Info("Dashboard statistics computed",
		zap.Int("employees", stats.TotalEmployees),
		zap.Int("active_tasks", stats.ActiveTasks))
	return c.JSON(http.StatusOK, stats)
}

// Calendar returns the deadline and onboarding events of one month (default: current month)
func (h *DashboardHandler) Calendar(c echo.Context) error {
	log := logger.FromContext(c)

	month := h.now().UTC()
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := calendar.ParseMonth(raw)
		if err != nil {
			log.Warn("Invalid month parameter", zap.String("month", raw), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
		}
		month = parsed
	}

	var (
		tasks     []*model.Task
		employees []*model.Employee
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		tasks, err = h.repos.Tasks.GetAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		employees, err = h.repos.Employees.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return respondError(c, log, err, "Record not found", "Failed to load calendar")
	}

	events := calendar.Build(month, tasks, employees)
	log.Info("Calendar events built",
		zap.String("month", month.Format(calendar.MonthLayout)),
		zap.Int("count", len(events)))
	return c.JSON(http.StatusOK, echo.Map{
		"month":  month.Format(calendar.MonthLayout),
		"events": events,
	})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/apper-canvas/staffhub-core-dash/internal/middleware"
	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TaskRequest defines the structure for task creation requests
type TaskRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	AssigneeID  *uint  `json:"assignee_id"`
}

// TaskUpdateRequest carries a partial task update
type TaskUpdateRequest struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// TaskHandler serves /api/tasks
type TaskHandler struct {
	repo repository.Repository[model.Task]
}

// NewTaskHandler creates the task handler
func NewTaskHandler(repo repository.Repository[model.Task]) *TaskHandler {
	return &TaskHandler{repo: repo}
}

func validTaskStatus(status string) bool {
	switch status {
	case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted:
		return true
	}
	return false
}

// ListTasks returns the tasks matching keywords, status and assignee
func (h *TaskHandler) ListTasks(c echo.Context) error {
	log := logger.FromContext(c)

	criteria := query.Criteria{
		Keywords: c.QueryParam("keywords"),
		Facets: map[query.Facet]string{
			query.FacetStatus:   c.QueryParam("status"),
			query.FacetAssignee: c.QueryParam("assignee_id"),
		},
	}
	sort := sortFromQuery(c)
	log.Info("Listing tasks",
		zap.String("keywords", criteria.Keywords),
		zap.String("sort", sort.Field))

	tasks, err := h.repo.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Task not found", "Failed to retrieve tasks")
	}

	result := applyQuery(c, log, model.KindTask, tasks, query.Tasks, criteria, sort)
	log.Info("Tasks retrieved successfully", zap.Int("count", len(result)))
	return c.JSON(http.StatusOK, result)
}

// GetTask retrieves a specific task by ID
func (h *TaskHandler) GetTask(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}

	task, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Task not found", "Failed to retrieve task")
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask adds a new task
func (h *TaskHandler) CreateTask(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new task")

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		log.Warn("Missing task title")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.Status == "" {
		req.Status = model.TaskStatusPending
	}
	if !validTaskStatus(req.Status) {
		log.Warn("Invalid task status", zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid task status"})
	}

	task := &model.Task{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	}
	if task.Name == "" {
		task.Name = task.Title
	}
	if claims, ok := middleware.UserFromContext(c); ok && claims.UserID != 0 {
		createdBy := claims.UserID
		task.CreatedBy = &createdBy
	}

	created, err := h.repo.Create(c.Request().Context(), task)
	if err != nil {
		return respondError(c, log, err, "Task not found", "Failed to create task")
	}

	prometheus.RecordOperation(string(model.KindTask), "create")
	log.Info("Task created successfully",
		zap.Uint("task_id", created.ID),
		zap.String("title", created.Title))
	return c.JSON(http.StatusCreated, created)
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Updating task", zap.Uint("task_id", id))

	var req TaskUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("task_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.Status != nil && !validTaskStatus(*req.Status) {
		log.Warn("Invalid task status", zap.String("status", *req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid task status"})
	}

	updated, err := h.repo.Update(c.Request().Context(), id, func(t *model.Task) error {
		setString(&t.Name, req.Name)
		setString(&t.Title, req.Title)
		setString(&t.Description, req.Description)
		setString(&t.DueDate, req.DueDate)
		setString(&t.Priority, req.Priority)
		setString(&t.Status, req.Status)
		if req.AssigneeID != nil {
			t.AssigneeID = req.AssigneeID
		}
		if t.Title == "" {
			return validationError("title cannot be empty")
		}
		return nil
	})
	if err != nil {
		return respondError(c, log, err, "Task not found", "Failed to update task")
	}

	prometheus.RecordOperation(string(model.KindTask), "update")
	log.Info("Task updated successfully",
		zap.Uint("task_id", id),
		zap.String("status", updated.Status))
	return c.JSON(http.StatusOK, updated)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Deleting task", zap.Uint("task_id", id))

	deleted, err := h.repo.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Task not found", "Failed to delete task")
	}
	if !deleted {
		log.Warn("Task not found", zap.Uint("task_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}

	prometheus.RecordOperation(string(model.KindTask), "delete")
	log.Info("Task deleted successfully", zap.Uint("task_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Task deleted successfully",
	})
}

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DepartmentRequest defines the structure for department creation/update requests
type DepartmentRequest struct {
	Name          string `json:"name"`
	EmployeeCount int    `json:"employee_count"`
	ManagerID     *uint  `json:"manager_id"`
	ParentDeptID  *uint  `json:"parent_dept_id"`
}

// DepartmentHandler serves /api/departments
type DepartmentHandler struct {
	departments repository.Repository[model.Department]
	employees   repository.Repository[model.Employee]
}

// NewDepartmentHandler creates the department handler
func NewDepartmentHandler(departments repository.Repository[model.Department], employees repository.Repository[model.Employee]) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, employees: employees}
}

// ListDepartments retrieves all departments
func (h *DepartmentHandler) ListDepartments(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing departments")

	departments, err := h.departments.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to retrieve departments")
	}

	log.Info("Departments retrieved successfully", zap.Int("count", len(departments)))
	return c.JSON(http.StatusOK, departments)
}

// GetDepartment retrieves a specific department by ID
func (h *DepartmentHandler) GetDepartment(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}

	department, err := h.departments.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to retrieve department")
	}
	return c.JSON(http.StatusOK, department)
}

// ListDepartmentEmployees returns the employees that belong to a department
func (h *DepartmentHandler) ListDepartmentEmployees(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	ctx := c.Request().Context()

	if _, err := h.departments.GetByID(ctx, id); err != nil {
		return respondError(c, log, err, "Department not found", "Failed to retrieve department")
	}

	employees, err := h.employees.GetAll(ctx)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to retrieve employees")
	}

	criteria := query.Criteria{Facets: map[query.Facet]string{
		query.FacetDepartment: strconv.FormatUint(uint64(id), 10),
	}}
	result := applyQuery(c, log, model.KindEmployee, employees, query.Employees, criteria, sortFromQuery(c))
	log.Info("Department employees retrieved successfully",
		zap.Uint("department_id", id),
		zap.Int("count", len(result)))
	return c.JSON(http.StatusOK, result)
}

// CreateDepartment adds a new department
func (h *DepartmentHandler) CreateDepartment(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new department")

	var req DepartmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		log.Warn("Missing department name")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx := c.Request().Context()
	taken, err := h.nameTaken(c, req.Name, 0)
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to create department")
	}
	if taken {
		log.Warn("Department with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Department with this name already exists",
		})
	}

	created, err := h.departments.Create(ctx, &model.Department{
		Name:          req.Name,
		EmployeeCount: req.EmployeeCount,
		ManagerID:     req.ManagerID,
		ParentDeptID:  req.ParentDeptID,
	})
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to create department")
	}

	prometheus.RecordOperation(string(model.KindDepartment), "create")
	log.Info("Department created successfully",
		zap.Uint("department_id", created.ID),
		zap.String("name", created.Name))
	return c.JSON(http.StatusCreated, created)
}

// UpdateDepartment updates an existing department
func (h *DepartmentHandler) UpdateDepartment(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Updating department", zap.Uint("department_id", id))

	var req DepartmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("department_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		log.Warn("Missing department name")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.ParentDeptID != nil && *req.ParentDeptID == id {
		log.Warn("Department cannot be its own parent", zap.Uint("department_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Department cannot be its own parent"})
	}

	taken, err := h.nameTaken(c, req.Name, id)
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to update department")
	}
	if taken {
		log.Warn("Department with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Department with this name already exists",
		})
	}

	updated, err := h.departments.Update(c.Request().Context(), id, func(d *model.Department) error {
		d.Name = req.Name
		d.EmployeeCount = req.EmployeeCount
		d.ManagerID = req.ManagerID
		d.ParentDeptID = req.ParentDeptID
		return nil
	})
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to update department")
	}

	prometheus.RecordOperation(string(model.KindDepartment), "update")
	log.Info("Department updated successfully",
		zap.Uint("department_id", id),
		zap.String("name", updated.Name))
	return c.JSON(http.StatusOK, updated)
}

// DeleteDepartment removes a department that no employee belongs to
func (h *DepartmentHandler) DeleteDepartment(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	ctx := c.Request().Context()
	log.Info("Deleting department", zap.Uint("department_id", id))

	employees, err := h.employees.GetAll(ctx)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to delete department")
	}
	count := 0
	for _, e := range employees {
		if e.DepartmentID == id {
			count++
		}
	}
	if count > 0 {
		log.Warn("Cannot delete department that still has employees",
			zap.Uint("department_id", id),
			zap.Int("employee_count", count))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Cannot delete department that still has employees",
		})
	}

	deleted, err := h.departments.Delete(ctx, id)
	if err != nil {
		return respondError(c, log, err, "Department not found", "Failed to delete department")
	}
	if !deleted {
		log.Warn("Department not found", zap.Uint("department_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Department not found"})
	}

	prometheus.RecordOperation(string(model.KindDepartment), "delete")
	log.Info("Department deleted successfully", zap.Uint("department_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Department deleted successfully",
	})
}

func (h *DepartmentHandler) nameTaken(c echo.Context, name string, exceptID uint) (bool, error) {
	departments, err := h.departments.GetAll(c.Request().Context())
	if err != nil {
		return false, err
	}
	for _, d := range departments {
		if d.ID != exceptID && strings.EqualFold(d.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

package handler

import (
	"net/http"
	"strings"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EmployeeRequest defines the structure for employee creation requests
type EmployeeRequest struct {
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	StartDate    string `json:"start_date"`
	Status       string `json:"status"`
	PhotoURL     string `json:"photo_url"`
	DepartmentID uint   `json:"department_id"`
}

// EmployeeUpdateRequest carries a partial update; absent members are left alone
type EmployeeUpdateRequest struct {
	Name         *string `json:"name"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Role         *string `json:"role"`
	StartDate    *string `json:"start_date"`
	Status       *string `json:"status"`
	PhotoURL     *string `json:"photo_url"`
	DepartmentID *uint   `json:"department_id"`
}

// EmployeeHandler serves /api/employees
type EmployeeHandler struct {
	repo repository.Repository[model.Employee]
}

// NewEmployeeHandler creates the employee handler
func NewEmployeeHandler(repo repository.Repository[model.Employee]) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

// ListEmployees returns the employees matching the query parameters
func (h *EmployeeHandler) ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)

	criteria := query.Criteria{
		Keywords: c.QueryParam("keywords"),
		Facets: map[query.Facet]string{
			query.FacetDepartment: c.QueryParam("department"),
			query.FacetRole:       c.QueryParam("role"),
			query.FacetStatus:     c.QueryParam("status"),
		},
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	sort := sortFromQuery(c)
	log.Info("Listing employees",
		zap.String("keywords", criteria.Keywords),
		zap.String("sort", sort.Field),
		zap.String("direction", string(sort.Direction)))

	employees, err := h.repo.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to retrieve employees")
	}

	result := applyQuery(c, log, model.KindEmployee, employees, query.Employees, criteria, sort)
	log.Info("Employees retrieved successfully",
		zap.Int("total", len(employees)),
		zap.Int("count", len(result)))
	return c.JSON(http.StatusOK, result)
}

// SearchEmployees matches q against first name, last name, email and role
func (h *EmployeeHandler) SearchEmployees(c echo.Context) error {
	log := logger.FromContext(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	log.Info("Searching employees", zap.String("query", q))

	employees, err := h.repo.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to search employees")
	}

	result := applyQuery(c, log, model.KindEmployee, employees, query.Employees, query.Criteria{Keywords: q}, query.Sort{})
	return c.JSON(http.StatusOK, result)
}

// GetEmployee retrieves a specific employee by ID
func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}

	employee, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to retrieve employee")
	}
	return c.JSON(http.StatusOK, employee)
}

// CreateEmployee adds a new employee
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new employee")

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		log.Warn("Missing required employee fields")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "first_name, last_name and email are required",
		})
	}

	ctx := c.Request().Context()
	taken, err := h.emailTaken(c, req.Email, 0)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to create employee")
	}
	if taken {
		log.Warn("Employee with this email already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Employee with this email already exists",
		})
	}

	employee := &model.Employee{
		Name:         req.Name,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		StartDate:    req.StartDate,
		Status:       req.Status,
		PhotoURL:     req.PhotoURL,
		DepartmentID: req.DepartmentID,
	}
	if employee.Status == "" {
		employee.Status = model.EmployeeStatusActive
	}
	employee.FillName()

	created, err := h.repo.Create(ctx, employee)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to create employee")
	}

	prometheus.RecordOperation(string(model.KindEmployee), "create")
	log.Info("Employee created successfully",
		zap.Uint("employee_id", created.ID),
		zap.String("email", created.Email))
	return c.JSON(http.StatusCreated, created)
}

// UpdateEmployee applies a partial update to an employee
func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Updating employee", zap.Uint("employee_id", id))

	var req EmployeeUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("employee_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Email != nil {
		taken, err := h.emailTaken(c, strings.TrimSpace(*req.Email), id)
		if err != nil {
			return respondError(c, log, err, "Employee not found", "Failed to update employee")
		}
		if taken {
			log.Warn("Employee with this email already exists", zap.String("email", *req.Email))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Employee with this email already exists",
			})
		}
	}

	updated, err := h.repo.Update(c.Request().Context(), id, func(e *model.Employee) error {
		setString(&e.Name, req.Name)
		setString(&e.FirstName, req.FirstName)
		setString(&e.LastName, req.LastName)
		setString(&e.Email, req.Email)
		setString(&e.Phone, req.Phone)
		setString(&e.Role, req.Role)
		setString(&e.StartDate, req.StartDate)
		setString(&e.Status, req.Status)
		setString(&e.PhotoURL, req.PhotoURL)
		if req.DepartmentID != nil {
			e.DepartmentID = *req.DepartmentID
		}
		if strings.TrimSpace(e.FirstName) == "" || strings.TrimSpace(e.LastName) == "" {
			return validationError("first_name and last_name cannot be empty")
		}
		e.FillName()
		return nil
	})
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to update employee")
	}

	prometheus.RecordOperation(string(model.KindEmployee), "update")
	log.Info("Employee updated successfully", zap.Uint("employee_id", id))
	return c.JSON(http.StatusOK, updated)
}

// DeleteEmployee removes an employee together with its custom fields
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Deleting employee", zap.Uint("employee_id", id))

	deleted, err := h.repo.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to delete employee")
	}
	if !deleted {
		log.Warn("Employee not found", zap.Uint("employee_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
	}

	prometheus.RecordOperation(string(model.KindEmployee), "delete")
	log.Info("Employee deleted successfully", zap.Uint("employee_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Employee deleted successfully",
	})
}

func (h *EmployeeHandler) emailTaken(c echo.Context, email string, exceptID uint) (bool, error) {
	if email == "" {
		return false, nil
	}
	employees, err := h.repo.GetAll(c.Request().Context())
	if err != nil {
		return false, err
	}
	for _, e := range employees {
		if e.ID != exceptID && strings.EqualFold(e.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

package handler

import (
	"net/http"

	"github.com/apper-canvas/staffhub-core-dash/internal/customfield"
	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomFieldsResponse is the custom field view of one employee
type CustomFieldsResponse struct {
	Employee        *model.Employee    `json:"employee,omitempty"`
	Fields          customfield.Fields `json:"fields"`
	MissingRequired []string           `json:"missing_required"`
}

// FieldValueRequest carries the value for PUT .../value; null resets the field
type FieldValueRequest struct {
	Value customfield.Value `json:"value"`
}

// CustomFieldHandler serves /api/employees/:id/custom-fields
type CustomFieldHandler struct {
	store *customfield.Store
}

// NewCustomFieldHandler creates the custom field handler
func NewCustomFieldHandler(store *customfield.Store) *CustomFieldHandler {
	return &CustomFieldHandler{store: store}
}

func newCustomFieldsResponse(employee *model.Employee, fields customfield.Fields) CustomFieldsResponse {
	if fields == nil {
		fields = customfield.Fields{}
	}
	missing := fields.MissingRequired()
	if missing == nil {
		missing = []string{}
	}
	return CustomFieldsResponse{Employee: employee, Fields: fields, MissingRequired: missing}
}

// respondWithEmployee decodes the custom fields of the updated employee for the response
func (h *CustomFieldHandler) respondWithEmployee(c echo.Context, log *zap.Logger, status int, employee *model.Employee) error {
	fields, err := customfield.Decode(employee.CustomFields)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to read custom fields")
	}
	return c.JSON(status, newCustomFieldsResponse(employee, fields))
}

// ListFields returns the decoded custom fields of an employee
func (h *CustomFieldHandler) ListFields(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}

	fields, err := h.store.List(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to read custom fields")
	}
	return c.JSON(http.StatusOK, newCustomFieldsResponse(nil, fields))
}

// AddField defines a new custom field on an employee
func (h *CustomFieldHandler) AddField(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}

	var def customfield.Definition
	if err := c.Bind(&def); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	log.Info("Adding custom field",
		zap.Uint("employee_id", id),
		zap.String("name", def.Name),
		zap.String("type", string(def.Type)))

	updated, err := h.store.AddField(c.Request().Context(), id, def)
	prometheus.RecordCustomFieldOperation("add", err)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to add custom field")
	}
	return h.respondWithEmployee(c, log, http.StatusCreated, updated)
}

// UpdateField merges the request into an existing custom field
func (h *CustomFieldHandler) UpdateField(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	fieldID := c.Param("fieldId")

	var u customfield.Update
	if err := c.Bind(&u); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	log.Info("Updating custom field", zap.Uint("employee_id", id), zap.String("field_id", fieldID))

	updated, err := h.store.UpdateField(c.Request().Context(), id, fieldID, u)
	prometheus.RecordCustomFieldOperation("update", err)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to update custom field")
	}
	return h.respondWithEmployee(c, log, http.StatusOK, updated)
}

// RemoveField deletes a custom field and its value
func (h *CustomFieldHandler) RemoveField(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	fieldID := c.Param("fieldId")
	log.Info("Removing custom field", zap.Uint("employee_id", id), zap.String("field_id", fieldID))

	updated, err := h.store.RemoveField(c.Request().Context(), id, fieldID)
	prometheus.RecordCustomFieldOperation("remove", err)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to remove custom field")
	}
	return h.respondWithEmployee(c, log, http.StatusOK, updated)
}

// SetFieldValue stores the value of a custom field
func (h *CustomFieldHandler) SetFieldValue(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	fieldID := c.Param("fieldId")

	var req FieldValueRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	updated, err := h.store.SetFieldValue(c.Request().Context(), id, fieldID, req.Value)
	prometheus.RecordCustomFieldOperation("set_value", err)
	if err != nil {
		return respondError(c, log, err, "Employee not found", "Failed to set custom field value")
	}
	log.Info("Custom field value stored", zap.Uint("employee_id", id), zap.String("field_id", fieldID))
	return h.respondWithEmployee(c, log, http.StatusOK, updated)
}

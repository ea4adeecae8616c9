package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apper-canvas/staffhub-core-dash/internal/customfield"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// badRequest is a rejected request body detected inside a repository update
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func validationError(msg string) error { return &badRequest{msg: msg} }

// errorStatus maps an error kind to the HTTP status and message shown to the client.
// notFound is the message used when the record itself is missing.
func errorStatus(err error, notFound, failure string) (int, string) {
	var (
		verr *customfield.ValidationError
		breq *badRequest
	)
	switch {
	case errors.As(err, &breq):
		return http.StatusBadRequest, breq.msg
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, query.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid query"
	case errors.Is(err, customfield.ErrDuplicateField):
		return http.StatusConflict, "Field name already exists"
	case errors.Is(err, customfield.ErrFieldNotFound):
		return http.StatusNotFound, "Custom field not found"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, notFound
	}
	return http.StatusInternalServerError, failure
}

// respondError logs err and writes the mapped error response
func respondError(c echo.Context, log *zap.Logger, err error, notFound, failure string) error {
	status, msg := errorStatus(err, notFound, failure)
	if status >= http.StatusInternalServerError {
		log.Error(failure, zap.Error(err))
	} else {
		log.Warn(msg, zap.Error(err))
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// parseID reads a positive numeric path parameter
func parseID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c echo.Context, log *zap.Logger, name string) error {
	log.Warn("Invalid id parameter", zap.String("param", name), zap.String("value", c.Param(name)))
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid " + name})
}

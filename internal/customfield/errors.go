package customfield

import "errors"

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation error")
	// ErrDuplicateField is returned when a normalized name is already used on the record
	ErrDuplicateField = errors.New("field name already exists")
	// ErrFieldNotFound is returned for an unknown field id
	ErrFieldNotFound = errors.New("custom field not found")
	// ErrMalformedFields is returned when the stored blob cannot be decoded
	ErrMalformedFields = errors.New("stored custom fields are malformed")
)

// ValidationError describes user input that cannot be accepted
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }

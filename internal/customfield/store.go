package customfield

import (
	"context"
	"fmt"
	"strings"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the part of the employee repository the store needs
type Repository interface {
	GetByID(ctx context.Context, id uint) (*model.Employee, error)
	Update(ctx context.Context, id uint, apply func(*model.Employee) error) (*model.Employee, error)
}

// Store applies custom field mutations to employee records.
//
// Every mutation reads the record, rebuilds the whole field list from that
// read and writes it back. There is no version check: two writers racing on
// the same record resolve as last-writer-wins. Callers that need ordering must
// await one mutation before issuing the next on the same record.
type Store struct {
	repo  Repository
	newID func() string
}

// NewStore creates a store backed by repo
func NewStore(repo Repository) *Store {
	return &Store{repo: repo, newID: uuid.NewString}
}

// List returns the decoded custom fields of a record
func (s *Store) List(ctx context.Context, recordID uint) (Fields, error) {
	return s.load(ctx, recordID)
}

// AddField validates def, appends it with a fresh id and a default value, and persists the record
func (s *Store) AddField(ctx context.Context, recordID uint, def Definition) (*model.Employee, error) {
	label := strings.TrimSpace(def.Label)
	name := NormalizeName(def.Name)
	if name == "" || label == "" {
		return nil, invalid("name and label required")
	}

	typ := def.Type
	if typ == "" {
		typ = TypeText
	}
	if !typ.Valid() {
		return nil, invalid(fmt.Sprintf("unknown field type %q", def.Type))
	}

	fields, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if fields.nameTaken(name, "") {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateField, name)
	}

	field := Field{
		ID:       s.newID(),
		Name:     name,
		Label:    label,
		Type:     typ,
		Required: def.Required,
		Value:    DefaultValue(typ),
	}
	if typ.HasOptions() {
		field.Options = normalizeOptions(def.Options)
	}

	updated := append(fields.Clone(), field)
	logger.FromStdContext(ctx).Debug("Adding custom field",
		zap.Uint("employee_id", recordID),
		zap.String("field_id", field.ID),
		zap.String("field_name", field.Name),
		zap.String("field_type", string(field.Type)))
	return s.save(ctx, recordID, updated)
}

// UpdateField merges u into the field with fieldID and persists the record
func (s *Store) UpdateField(ctx context.Context, recordID uint, fieldID string, u Update) (*model.Employee, error) {
	fields, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	idx := fields.Index(fieldID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}

	updated := fields.Clone()
	f := &updated[idx]

	if u.Name != nil {
		name := NormalizeName(*u.Name)
		if name == "" {
			return nil, invalid("name and label required")
		}
		if name != f.Name && updated.nameTaken(name, f.ID) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, name)
		}
		f.Name = name
	}
	if u.Label != nil {
		label := strings.TrimSpace(*u.Label)
		if label == "" {
			return nil, invalid("name and label required")
		}
		f.Label = label
	}
	if u.Type != nil {
		if !u.Type.Valid() {
			return nil, invalid(fmt.Sprintf("unknown field type %q", *u.Type))
		}
		f.Type = *u.Type
		if !f.Value.fits(f.Type) {
			f.Value = DefaultValue(f.Type)
		}
	}
	if u.Required != nil {
		f.Required = *u.Required
	}
	if u.Options != nil {
		f.Options = normalizeOptions(u.Options)
	}
	if !f.Type.HasOptions() {
		f.Options = nil
	}

	return s.save(ctx, recordID, updated)
}

// RemoveField deletes the definition and its value together
func (s *Store) RemoveField(ctx context.Context, recordID uint, fieldID string) (*model.Employee, error) {
	fields, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	idx := fields.Index(fieldID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}

	updated := make(Fields, 0, len(fields)-1)
	updated = append(updated, fields[:idx]...)
	updated = append(updated, fields[idx+1:]...)
	return s.save(ctx, recordID, updated.Clone())
}

// SetFieldValue stores value on the field. A null value resets the field to
// its default; any other value must have the shape the field type stores.
// Select values are not checked against Options.
func (s *Store) SetFieldValue(ctx context.Context, recordID uint, fieldID string, value Value) (*model.Employee, error) {
	fields, err := s.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	idx := fields.Index(fieldID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}

	updated := fields.Clone()
	f := &updated[idx]
	switch {
	case value.IsNull():
		f.Value = DefaultValue(f.Type)
	case f.Type.Valid() && !value.fits(f.Type):
		return nil, invalid(fmt.Sprintf("field %s expects a %s value, got %s", f.Name, f.Type.shape(), value.shape))
	default:
		f.Value = value.clone()
	}

	return s.save(ctx, recordID, updated)
}

func (s *Store) load(ctx context.Context, recordID uint) (Fields, error) {
	employee, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	fields, err := Decode(employee.CustomFields)
	if err != nil {
		return nil, fmt.Errorf("employee %d: %w", recordID, err)
	}
	return fields, nil
}

func (s *Store) save(ctx context.Context, recordID uint, fields Fields) (*model.Employee, error) {
	blob, err := Encode(fields)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, recordID, func(e *model.Employee) error {
		e.CustomFields = blob
		return nil
	})
}

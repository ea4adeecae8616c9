// Package repository persists records. Two implementations share one
// interface: a gorm backed store and an in-memory mock with artificial latency.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("record not found")
	// ErrRepository marks failures of the storage backend itself
	ErrRepository = errors.New("repository error")
)

// Repository stores records of one kind
type Repository[T any] interface {
	// GetAll returns every live record ordered by id
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	// Create stores rec under a freshly assigned id and returns the stored copy
	Create(ctx context.Context, rec *T) (*T, error)
	// Update reads the record, lets apply modify it and writes it back.
	// An error from apply aborts the write and is returned unchanged.
	Update(ctx context.Context, id uint, apply func(*T) error) (*T, error)
	// Delete reports whether a record was removed
	Delete(ctx context.Context, id uint) (bool, error)
}

// recordPtr lets the generic implementations reach the id of a *T
type recordPtr[T any] interface {
	*T
	model.Record
}

// Repositories bundles one repository per record kind
type Repositories struct {
	Employees   Repository[model.Employee]
	Departments Repository[model.Department]
	Tasks       Repository[model.Task]
	Reviews     Repository[model.Review]
}

func notFound(kind model.Kind, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

func failure(kind model.Kind, op string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", kind, op, ErrRepository, err)
}

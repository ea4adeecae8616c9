package repository

import (
	"context"
	"errors"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"gorm.io/gorm"
)

// Gorm stores records in a SQL database. Deletes are soft, so an id is never
// handed out twice.
type Gorm[T any, PT recordPtr[T]] struct {
	db   *gorm.DB
	kind model.Kind
}

// NewGorm creates a repository for records of kind on db
func NewGorm[T any, PT recordPtr[T]](db *gorm.DB, kind model.Kind) *Gorm[T, PT] {
	return &Gorm[T, PT]{db: db, kind: kind}
}

// NewGormRepositories wires a gorm repository for every record kind
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Employees:   NewGorm[model.Employee](db, model.KindEmployee),
		Departments: NewGorm[model.Department](db, model.KindDepartment),
		Tasks:       NewGorm[model.Task](db, model.KindTask),
		Reviews:     NewGorm[model.Review](db, model.KindReview),
	}
}

func (r *Gorm[T, PT]) track(op string) func(time.Time) {
	return prometheus.TrackDBOperation(string(r.kind) + "_" + op)
}

func (r *Gorm[T, PT]) GetAll(ctx context.Context) ([]*T, error) {
	defer r.track("get_all")(time.Now())

	var rows []*T
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, failure(r.kind, "get all", err)
	}
	return rows, nil
}

func (r *Gorm[T, PT]) GetByID(ctx context.Context, id uint) (*T, error) {
	defer r.track("get")(time.Now())

	var rec T
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, r.wrap("get", id, err)
	}
	return &rec, nil
}

func (r *Gorm[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	defer r.track("create")(time.Now())

	created := *rec
	PT(&created).SetRecordID(0)
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, failure(r.kind, "create", err)
	}
	return &created, nil
}

func (r *Gorm[T, PT]) Update(ctx context.Context, id uint, apply func(*T) error) (*T, error) {
	defer r.track("update")(time.Now())

	var (
		rec      T
		applyErr error
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return err
		}
		if applyErr = apply(&rec); applyErr != nil {
			return applyErr
		}
		PT(&rec).SetRecordID(id)
		return tx.Save(&rec).Error
	})
	if applyErr != nil {
		return nil, applyErr
	}
	if err != nil {
		return nil, r.wrap("update", id, err)
	}
	return &rec, nil
}

func (r *Gorm[T, PT]) Delete(ctx context.Context, id uint) (bool, error) {
	defer r.track("delete")(time.Now())

	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, failure(r.kind, "delete", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *Gorm[T, PT]) wrap(op string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(r.kind, id)
	}
	return failure(r.kind, op, err)
}

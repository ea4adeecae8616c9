package repository

import (
	"context"
	"sync"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
)

// Memory is the mock repository. Every call waits for the configured latency
// first and gives up when ctx is done. Ids grow monotonically and are not
// reused after a delete. Records are deep copied in and out, so callers never
// share state with the store.
type Memory[T any, PT recordPtr[T]] struct {
	mu      sync.RWMutex
	records map[uint]T
	order   []uint
	lastID  uint
	latency time.Duration
	kind    model.Kind
}

// NewMemory creates an empty mock repository for records of kind
func NewMemory[T any, PT recordPtr[T]](kind model.Kind, latency time.Duration) *Memory[T, PT] {
	return &Memory[T, PT]{
		records: make(map[uint]T),
		latency: latency,
		kind:    kind,
	}
}

// NewMemoryRepositories wires a mock repository for every record kind
func NewMemoryRepositories(latency time.Duration) *Repositories {
	return &Repositories{
		Employees:   NewMemory[model.Employee](model.KindEmployee, latency),
		Departments: NewMemory[model.Department](model.KindDepartment, latency),
		Tasks:       NewMemory[model.Task](model.KindTask, latency),
		Reviews:     NewMemory[model.Review](model.KindReview, latency),
	}
}

// copyOf copies rec including the members it holds by reference
func copyOf[T any, PT recordPtr[T]](rec *T) T {
	out := *rec
	if c, ok := any(PT(&out)).(model.RefCopier); ok {
		c.CopyRefs()
	}
	return out
}

func (r *Memory[T, PT]) wait(ctx context.Context, op string) error {
	defer prometheus.TrackDBOperation(string(r.kind) + "_" + op)(time.Now())

	if r.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return failure(r.kind, op, err)
		}
		return nil
	}

	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return failure(r.kind, op, ctx.Err())
	}
}

func (r *Memory[T, PT]) GetAll(ctx context.Context) ([]*T, error) {
	if err := r.wait(ctx, "get_all"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*T, 0, len(r.order))
	for _, id := range r.order {
		rec := r.records[id]
		rec = copyOf[T, PT](&rec)
		out = append(out, &rec)
	}
	return out, nil
}

func (r *Memory[T, PT]) GetByID(ctx context.Context, id uint) (*T, error) {
	if err := r.wait(ctx, "get"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, notFound(r.kind, id)
	}
	rec = copyOf[T, PT](&rec)
	return &rec, nil
}

func (r *Memory[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	if err := r.wait(ctx, "create"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	stored := copyOf[T, PT](rec)
	PT(&stored).SetRecordID(r.lastID)
	r.records[r.lastID] = stored
	r.order = append(r.order, r.lastID)

	created := copyOf[T, PT](&stored)
	return &created, nil
}

func (r *Memory[T, PT]) Update(ctx context.Context, id uint, apply func(*T) error) (*T, error) {
	if err := r.wait(ctx, "update"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.records[id]
	if !ok {
		return nil, notFound(r.kind, id)
	}
	rec := copyOf[T, PT](&current)
	if err := apply(&rec); err != nil {
		return nil, err
	}
	PT(&rec).SetRecordID(id)
	r.records[id] = copyOf[T, PT](&rec)
	return &rec, nil
}

func (r *Memory[T, PT]) Delete(ctx context.Context, id uint) (bool, error) {
	if err := r.wait(ctx, "delete"); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

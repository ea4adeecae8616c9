package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"gopkg.in/yaml.v3"
)

// Fixtures is the content of a YAML seed file. Records are created in file
// order, so on an empty store the n-th record of a kind gets id n and
// references between kinds can be written as plain ids.
type Fixtures struct {
	Departments []*model.Department
	Employees   []*model.Employee
	Tasks       []*model.Task
	Reviews     []*model.Review
}

// fixtureFile mirrors the YAML layout; entries use the JSON field names of the models
type fixtureFile struct {
	Departments []map[string]any `yaml:"departments"`
	Employees   []map[string]any `yaml:"employees"`
	Tasks       []map[string]any `yaml:"tasks"`
	Reviews     []map[string]any `yaml:"reviews"`
}

// LoadFixtures reads and parses a YAML seed file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures parses YAML seed data
func ParseFixtures(data []byte) (*Fixtures, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	var f Fixtures
	if err := convert("departments", file.Departments, &f.Departments); err != nil {
		return nil, err
	}
	if err := convert("employees", file.Employees, &f.Employees); err != nil {
		return nil, err
	}
	if err := convert("tasks", file.Tasks, &f.Tasks); err != nil {
		return nil, err
	}
	if err := convert("reviews", file.Reviews, &f.Reviews); err != nil {
		return nil, err
	}
	return &f, nil
}

// convert re-encodes YAML entries as JSON so the model json tags apply
func convert[T any](section string, entries []map[string]any, out *[]*T) error {
	if len(entries) == 0 {
		return nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("fixtures %s: %w", section, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("fixtures %s: %w", section, err)
	}
	return nil
}

// Seed creates every fixture record through the repositories
func (r *Repositories) Seed(ctx context.Context, f *Fixtures) error {
	if err := seedAll(ctx, r.Departments, f.Departments); err != nil {
		return err
	}
	for _, e := range f.Employees {
		e.FillName()
	}
	if err := seedAll(ctx, r.Employees, f.Employees); err != nil {
		return err
	}
	if err := seedAll(ctx, r.Tasks, f.Tasks); err != nil {
		return err
	}
	return seedAll(ctx, r.Reviews, f.Reviews)
}

func seedAll[T any](ctx context.Context, repo Repository[T], records []*T) error {
	for _, rec := range records {
		if _, err := repo.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

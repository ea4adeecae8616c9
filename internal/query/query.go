// Package query derives the filtered and sorted views that list endpoints
// render from a base collection of records.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidInput is returned for malformed engine arguments. Callers show the
// unfiltered base collection instead.
var ErrInvalidInput = errors.New("invalid query input")

// Direction of a sort
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Facet names an exact-match criterion
type Facet string

const (
	FacetDepartment Facet = "department"
	FacetRole       Facet = "role"
	FacetStatus     Facet = "status"
	FacetAssignee   Facet = "assignee"
	FacetEmployee   Facet = "employee"
)

// Criteria narrows a collection. Empty members are ignored and the rest are
// combined with AND. StartDate and EndDate are carried for the caller but
// are not applied.
type Criteria struct {
	Keywords  string
	Facets    map[Facet]string
	StartDate string
	EndDate   string
}

// IsEmpty reports whether the criteria select every record
func (c Criteria) IsEmpty() bool {
	if c.Keywords != "" {
		return false
	}
	for _, v := range c.Facets {
		if v != "" {
			return false
		}
	}
	return true
}

// HasDateRange reports whether a date range was supplied
func (c Criteria) HasDateRange() bool {
	return c.StartDate != "" || c.EndDate != ""
}

// Sort is a field name plus a direction. An empty field, or one the schema
// has no key for, keeps the input order.
type Sort struct {
	Field     string
	Direction Direction
}

// Compare is a three-way comparison of two records on one sort key
type Compare[T any] func(a, b *T) int

// Schema describes how the engine reads one record kind
type Schema[T any] struct {
	// Keywords are the text fields searched by Criteria.Keywords
	Keywords []func(*T) string
	// Facets are the exact-match fields the kind supports
	Facets map[Facet]func(*T) string
	// Keys are the sortable fields by name; several names may share a key
	Keys map[string]Compare[T]
}

// FilterAndSort returns a new slice with the records of base that match c,
// ordered by s. base is never modified and equal inputs give equal outputs.
func FilterAndSort[T any](base []*T, schema Schema[T], c Criteria, s Sort) ([]*T, error) {
	compare, err := schema.comparator(s)
	if err != nil {
		return nil, err
	}
	match, err := schema.matcher(c)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(base))
	for i, rec := range base {
		if rec == nil {
			return nil, fmt.Errorf("%w: nil record at index %d", ErrInvalidInput, i)
		}
		if match(rec) {
			out = append(out, rec)
		}
	}

	if compare != nil {
		slices.SortStableFunc(out, compare)
	}
	return out, nil
}

// Sortable reports whether the schema has a key for field
func (schema Schema[T]) Sortable(field string) bool {
	_, ok := schema.Keys[field]
	return ok
}

func (schema Schema[T]) matcher(c Criteria) (func(*T) bool, error) {
	type facetFilter struct {
		get  func(*T) string
		want string
	}
	var facets []facetFilter
	for facet, want := range c.Facets {
		if want == "" {
			continue
		}
		get, ok := schema.Facets[facet]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported filter %q", ErrInvalidInput, facet)
		}
		facets = append(facets, facetFilter{get: get, want: want})
	}
	keyword := strings.ToLower(c.Keywords)

	return func(rec *T) bool {
		for _, f := range facets {
			if f.get(rec) != f.want {
				return false
			}
		}
		if keyword == "" {
			return true
		}
		for _, field := range schema.Keywords {
			if strings.Contains(strings.ToLower(field(rec)), keyword) {
				return true
			}
		}
		return false
	}, nil
}

func (schema Schema[T]) comparator(s Sort) (func(a, b *T) int, error) {
	switch s.Direction {
	case "", Asc, Desc:
	default:
		return nil, fmt.Errorf("%w: sort direction %q", ErrInvalidInput, s.Direction)
	}
	if s.Field == "" {
		return nil, nil
	}
	compare, ok := schema.Keys[s.Field]
	if !ok {
		// every record compares equal, so the stable sort keeps input order
		return nil, nil
	}
	if s.Direction == Desc {
		return func(a, b *T) int { return -compare(a, b) }, nil
	}
	return compare, nil
}

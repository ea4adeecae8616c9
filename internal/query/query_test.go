package query

import (
	"strings"
	"testing"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employees() []*model.Employee {
	return []*model.Employee{
		{ID: 1, FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@company.com", Role: "Software Engineer", DepartmentID: 1, Status: "active", StartDate: "2022-03-15"},
		{ID: 2, FirstName: "Michael", LastName: "Chen", Email: "michael.chen@company.com", Role: "Product Manager", DepartmentID: 2, Status: "active", StartDate: "2021-08-01"},
		{ID: 3, FirstName: "Emily", LastName: "Rodriguez", Email: "emily.r@company.com", Role: "UX Designer", DepartmentID: 3, Status: "on-leave", StartDate: "not a date"},
		{ID: 4, FirstName: "David", LastName: "Kim", Email: "dkim@company.com", Role: "Software Engineer", DepartmentID: 1, Status: "terminated", StartDate: "2020-01-10"},
		{ID: 5, FirstName: "Jessica", LastName: "Taylor", Email: "jtaylor@company.com", Role: "HR Specialist", DepartmentID: 4, Status: "active", StartDate: ""},
	}
}

func idsOf(es []*model.Employee) []uint {
	out := make([]uint, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestEmptyCriteriaReturnsInputOrder(t *testing.T) {
	base := employees()
	got, err := FilterAndSort(base, Employees, Criteria{}, Sort{})
	require.NoError(t, err)
	assert.Equal(t, idsOf(base), idsOf(got))

	got, err = FilterAndSort([]*model.Employee{}, Employees, Criteria{}, Sort{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDisplayNameScenario(t *testing.T) {
	base := []*model.Employee{
		{ID: 1, FirstName: "Bob", LastName: "Lee", DepartmentID: 7},
		{ID: 2, FirstName: "Amy", LastName: "Zed", DepartmentID: 7},
	}
	got, err := FilterAndSort(base, Employees, Criteria{}, Sort{Field: SortDisplayName, Direction: Asc})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Amy", got[0].FirstName)
	assert.Equal(t, "Bob", got[1].FirstName)
}

func TestKeywordMatchesOneOfFourFields(t *testing.T) {
	searched := func(e *model.Employee) []string {
		return []string{e.FirstName, e.LastName, e.Email, e.Role}
	}

	for _, kw := range []string{"engineer", "CHEN", "company", "r", "zzz", "Designer"} {
		t.Run(kw, func(t *testing.T) {
			base := employees()
			got, err := FilterAndSort(base, Employees, Criteria{Keywords: kw}, Sort{})
			require.NoError(t, err)

			returned := map[uint]bool{}
			for _, e := range got {
				returned[e.ID] = true
			}
			for _, e := range base {
				hit := false
				for _, f := range searched(e) {
					if strings.Contains(strings.ToLower(f), strings.ToLower(kw)) {
						hit = true
					}
				}
				assert.Equal(t, hit, returned[e.ID], "employee %d keyword %q", e.ID, kw)
			}
		})
	}
}

func TestFacetsCombineWithAnd(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []uint
	}{
		{"department", Criteria{Facets: map[Facet]string{FacetDepartment: "1"}}, []uint{1, 4}},
		{"role", Criteria{Facets: map[Facet]string{FacetRole: "Software Engineer"}}, []uint{1, 4}},
		{"role is exact", Criteria{Facets: map[Facet]string{FacetRole: "software engineer"}}, []uint{}},
		{"status", Criteria{Facets: map[Facet]string{FacetStatus: "active"}}, []uint{1, 2, 5}},
		{"department and status", Criteria{Facets: map[Facet]string{FacetDepartment: "1", FacetStatus: "active"}}, []uint{1}},
		{"keywords and status", Criteria{Keywords: "company", Facets: map[Facet]string{FacetStatus: "on-leave"}}, []uint{3}},
		{"blank facet ignored", Criteria{Facets: map[Facet]string{FacetRole: ""}}, []uint{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterAndSort(employees(), Employees, tt.criteria, Sort{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, idsOf(got))
		})
	}
}

func TestDateRangeIsNotApplied(t *testing.T) {
	c := Criteria{StartDate: "2030-01-01", EndDate: "2030-12-31"}
	assert.True(t, c.HasDateRange())
	assert.True(t, c.IsEmpty())

	got, err := FilterAndSort(employees(), Employees, c, Sort{})
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestSortAscDescReverse(t *testing.T) {
	for _, field := range []string{SortDisplayName, "last_name", "email", "id"} {
		t.Run(field, func(t *testing.T) {
			asc, err := FilterAndSort(employees(), Employees, Criteria{}, Sort{Field: field, Direction: Asc})
			require.NoError(t, err)
			desc, err := FilterAndSort(employees(), Employees, Criteria{}, Sort{Field: field, Direction: Desc})
			require.NoError(t, err)

			reversed := idsOf(desc)
			for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
				reversed[i], reversed[j] = reversed[j], reversed[i]
			}
			assert.Equal(t, idsOf(asc), reversed)
		})
	}
}

func TestSortByStartDatePutsInvalidFirst(t *testing.T) {
	got, err := FilterAndSort(employees(), Employees, Criteria{}, Sort{Field: "start_date", Direction: Asc})
	require.NoError(t, err)
	// 3 and 5 do not parse and keep their relative order
	assert.Equal(t, []uint{3, 5, 4, 2, 1}, idsOf(got))

	got, err = FilterAndSort(employees(), Employees, Criteria{}, Sort{Field: SortStartDate, Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 4, 3, 5}, idsOf(got))
}

func TestSortIsCaseInsensitive(t *testing.T) {
	base := []*model.Employee{
		{ID: 1, FirstName: "bob", LastName: "a"},
		{ID: 2, FirstName: "Alice", LastName: "b"},
		{ID: 3, FirstName: "carl", LastName: "c"},
	}
	got, err := FilterAndSort(base, Employees, Criteria{}, Sort{Field: "name"})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1, 3}, idsOf(got))
}

func TestFilterAndSortIsIdempotent(t *testing.T) {
	c := Criteria{Keywords: "o", Facets: map[Facet]string{FacetStatus: "active"}}
	s := Sort{Field: SortDisplayName, Direction: Desc}

	once, err := FilterAndSort(employees(), Employees, c, s)
	require.NoError(t, err)
	twice, err := FilterAndSort(once, Employees, c, s)
	require.NoError(t, err)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second pass changed the result (-once +twice):\n%s", diff)
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	base := employees()
	snapshot := make([]model.Employee, len(base))
	for i, e := range base {
		snapshot[i] = *e
	}
	order := idsOf(base)

	_, err := FilterAndSort(base, Employees, Criteria{Keywords: "a"}, Sort{Field: SortDisplayName, Direction: Desc})
	require.NoError(t, err)

	assert.Equal(t, order, idsOf(base))
	for i, e := range base {
		assert.Equal(t, snapshot[i], *e)
	}
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		base     []*model.Employee
		criteria Criteria
		sort     Sort
	}{
		{"nil element", []*model.Employee{{ID: 1}, nil}, Criteria{}, Sort{}},
		{"bad direction", employees(), Criteria{}, Sort{Field: "email", Direction: "sideways"}},
		{"unsupported facet", employees(), Criteria{Facets: map[Facet]string{FacetAssignee: "3"}}, Sort{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterAndSort(tt.base, Employees, tt.criteria, tt.sort)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, got)
		})
	}
}

func TestUnknownSortFieldKeepsFilterAndOrder(t *testing.T) {
	for _, dir := range []Direction{"", Asc, Desc} {
		got, err := FilterAndSort(employees(), Employees, Criteria{Keywords: "a"}, Sort{Field: "salary", Direction: dir})
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2, 3, 4, 5}, idsOf(got), dir)

		got, err = FilterAndSort(employees(), Employees, Criteria{Keywords: "engineer"}, Sort{Field: "salary", Direction: dir})
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 4}, idsOf(got), dir)
	}
	assert.False(t, Employees.Sortable("salary"))
	assert.True(t, Employees.Sortable("phone"))
}

func TestSortByRawFields(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := []*model.Employee{
		{ID: 1, FirstName: "Sarah", Phone: "555-0300", PhotoURL: "https://img/b.png", CreatedAt: day.Add(48 * time.Hour)},
		{ID: 2, FirstName: "Michael", Phone: "555-0100", PhotoURL: "", CreatedAt: day},
		{ID: 3, FirstName: "Emily", Phone: "555-0200", PhotoURL: "https://img/A.png", CreatedAt: day.Add(24 * time.Hour)},
	}

	tests := []struct {
		sort Sort
		want []uint
	}{
		{Sort{Field: "phone", Direction: Asc}, []uint{2, 3, 1}},
		{Sort{Field: "phone", Direction: Desc}, []uint{1, 3, 2}},
		{Sort{Field: "photo_url"}, []uint{2, 3, 1}},
		{Sort{Field: "created_at"}, []uint{2, 3, 1}},
		{Sort{Field: "createdAt", Direction: Desc}, []uint{1, 3, 2}},
		{Sort{Field: "updated_at"}, []uint{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.sort.Field+"/"+string(tt.sort.Direction), func(t *testing.T) {
			got, err := FilterAndSort(base, Employees, Criteria{}, tt.sort)
			require.NoError(t, err)
			assert.Equal(t, tt.want, idsOf(got))
		})
	}
}

func TestTaskSchema(t *testing.T) {
	one, two := uint(1), uint(2)
	tasks := []*model.Task{
		{ID: 1, Title: "Quarterly report", Description: "Finance numbers", DueDate: "2024-03-31", Priority: "high", Status: "pending", AssigneeID: &one},
		{ID: 2, Title: "Onboard new hire", Description: "Laptop and badge", DueDate: "2024-02-15", Priority: "medium", Status: "completed", AssigneeID: &two},
		{ID: 3, Title: "Update handbook", Description: "Remote work REPORT section", DueDate: "", Priority: "low", Status: "in-progress"},
	}

	got, err := FilterAndSort(tasks, Tasks, Criteria{Keywords: "report"}, Sort{Field: "due_date", Direction: Asc})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID, "missing due date sorts first")
	assert.Equal(t, uint(1), got[1].ID)

	got, err = FilterAndSort(tasks, Tasks, Criteria{Facets: map[Facet]string{FacetAssignee: "2"}}, Sort{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)

	got, err = FilterAndSort(tasks, Tasks, Criteria{}, Sort{Field: "title", Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, "Update handbook", got[0].Title)

	got, err = FilterAndSort(tasks, Tasks, Criteria{}, Sort{Field: "assignee_id", Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(3), got[2].ID, "unassigned tasks sort last in descending order")

	_, err = FilterAndSort(tasks, Tasks, Criteria{Facets: map[Facet]string{FacetRole: "x"}}, Sort{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReviewSchema(t *testing.T) {
	emp := uint(4)
	reviews := []*model.Review{
		{ID: 1, Name: "Q1", Period: "2024-Q1", Status: "pending", EmployeeID: &emp},
		{ID: 2, Name: "Q1", Period: "2024-Q1", Status: "completed"},
	}
	got, err := FilterAndSort(reviews, Reviews, Criteria{Facets: map[Facet]string{FacetEmployee: "4", FacetStatus: "pending"}}, Sort{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-01-02", "2024-01-02T10:00:00Z", "2024-01-02T10:00:00", " 2024-01-02 "} {
		_, ok := ParseDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "02/01/2024", "tomorrow"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, s)
	}
}

package query

import (
	"strconv"
	"time"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
)

// Sort field names shared with the HTTP layer
const (
	SortDisplayName = "firstName"
	SortStartDate   = "startDate"
)

func optionalID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

var (
	employeeDisplayName = TextKey(func(e *model.Employee) string { return e.DisplayName() })
	employeeStartDate   = DateKey(func(e *model.Employee) string { return e.StartDate })
	employeeLastName    = TextKey(func(e *model.Employee) string { return e.LastName })
	employeePhotoURL    = TextKey(func(e *model.Employee) string { return e.PhotoURL })
	employeeDepartment  = NumberKey(func(e *model.Employee) uint { return e.DepartmentID })
	employeeCreatedAt   = TimeKey(func(e *model.Employee) time.Time { return e.CreatedAt })
	employeeUpdatedAt   = TimeKey(func(e *model.Employee) time.Time { return e.UpdatedAt })
)

// Employees searches first name, last name, email and role, and sorts by
// display name ("first last") or by parsed start date among others.
var Employees = Schema[model.Employee]{
	Keywords: []func(*model.Employee) string{
		func(e *model.Employee) string { return e.FirstName },
		func(e *model.Employee) string { return e.LastName },
		func(e *model.Employee) string { return e.Email },
		func(e *model.Employee) string { return e.Role },
	},
	Facets: map[Facet]func(*model.Employee) string{
		FacetDepartment: func(e *model.Employee) string {
			if e.DepartmentID == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(e.DepartmentID), 10)
		},
		FacetRole:   func(e *model.Employee) string { return e.Role },
		FacetStatus: func(e *model.Employee) string { return e.Status },
	},
	Keys: map[string]Compare[model.Employee]{
		SortDisplayName: employeeDisplayName,
		"first_name":    employeeDisplayName,
		"name":          employeeDisplayName,
		SortStartDate:   employeeStartDate,
		"start_date":    employeeStartDate,
		"lastName":      employeeLastName,
		"last_name":     employeeLastName,
		"email":         TextKey(func(e *model.Employee) string { return e.Email }),
		"phone":         TextKey(func(e *model.Employee) string { return e.Phone }),
		"role":          TextKey(func(e *model.Employee) string { return e.Role }),
		"status":        TextKey(func(e *model.Employee) string { return e.Status }),
		"photoUrl":      employeePhotoURL,
		"photo_url":     employeePhotoURL,
		"department":    employeeDepartment,
		"departmentId":  employeeDepartment,
		"department_id": employeeDepartment,
		"createdAt":     employeeCreatedAt,
		"created_at":    employeeCreatedAt,
		"updatedAt":     employeeUpdatedAt,
		"updated_at":    employeeUpdatedAt,
		"id":            NumberKey(func(e *model.Employee) uint { return e.ID }),
	},
}

var (
	taskDueDate   = DateKey(func(t *model.Task) string { return t.DueDate })
	taskAssignee  = OptionalNumberKey(func(t *model.Task) *uint { return t.AssigneeID })
	taskCreatedBy = OptionalNumberKey(func(t *model.Task) *uint { return t.CreatedBy })
	taskCreatedAt = TimeKey(func(t *model.Task) time.Time { return t.CreatedAt })
	taskUpdatedAt = TimeKey(func(t *model.Task) time.Time { return t.UpdatedAt })
)

// Tasks searches title and description
var Tasks = Schema[model.Task]{
	Keywords: []func(*model.Task) string{
		func(t *model.Task) string { return t.Title },
		func(t *model.Task) string { return t.Description },
	},
	Facets: map[Facet]func(*model.Task) string{
		FacetStatus:   func(t *model.Task) string { return t.Status },
		FacetAssignee: func(t *model.Task) string { return optionalID(t.AssigneeID) },
	},
	Keys: map[string]Compare[model.Task]{
		"name":        TextKey(func(t *model.Task) string { return t.Name }),
		"title":       TextKey(func(t *model.Task) string { return t.Title }),
		"description": TextKey(func(t *model.Task) string { return t.Description }),
		"due_date":    taskDueDate,
		"dueDate":     taskDueDate,
		"priority":    TextKey(func(t *model.Task) string { return t.Priority }),
		"status":      TextKey(func(t *model.Task) string { return t.Status }),
		"assignee_id": taskAssignee,
		"assigneeId":  taskAssignee,
		"created_by":  taskCreatedBy,
		"createdBy":   taskCreatedBy,
		"created_at":  taskCreatedAt,
		"createdAt":   taskCreatedAt,
		"updated_at":  taskUpdatedAt,
		"updatedAt":   taskUpdatedAt,
		"id":          NumberKey(func(t *model.Task) uint { return t.ID }),
	},
}

var (
	reviewEmployee  = OptionalNumberKey(func(r *model.Review) *uint { return r.EmployeeID })
	reviewReviewer  = OptionalNumberKey(func(r *model.Review) *uint { return r.ReviewerID })
	reviewCreatedAt = TimeKey(func(r *model.Review) time.Time { return r.CreatedAt })
	reviewUpdatedAt = TimeKey(func(r *model.Review) time.Time { return r.UpdatedAt })
)

// Reviews searches the review name, period and comments
var Reviews = Schema[model.Review]{
	Keywords: []func(*model.Review) string{
		func(r *model.Review) string { return r.Name },
		func(r *model.Review) string { return r.Period },
		func(r *model.Review) string { return r.Comments },
	},
	Facets: map[Facet]func(*model.Review) string{
		FacetStatus:   func(r *model.Review) string { return r.Status },
		FacetEmployee: func(r *model.Review) string { return optionalID(r.EmployeeID) },
	},
	Keys: map[string]Compare[model.Review]{
		"name":        TextKey(func(r *model.Review) string { return r.Name }),
		"period":      TextKey(func(r *model.Review) string { return r.Period }),
		"comments":    TextKey(func(r *model.Review) string { return r.Comments }),
		"status":      TextKey(func(r *model.Review) string { return r.Status }),
		"employee_id": reviewEmployee,
		"employeeId":  reviewEmployee,
		"reviewer_id": reviewReviewer,
		"reviewerId":  reviewReviewer,
		"created_at":  reviewCreatedAt,
		"createdAt":   reviewCreatedAt,
		"updated_at":  reviewUpdatedAt,
		"updatedAt":   reviewUpdatedAt,
		"id":          NumberKey(func(r *model.Review) uint { return r.ID }),
	},
}

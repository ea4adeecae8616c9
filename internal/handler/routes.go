package handler

import (
	"github.com/apper-canvas/staffhub-core-dash/internal/customfield"
	mid "github.com/apper-canvas/staffhub-core-dash/internal/middleware"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/jwtutil"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options wires the route handlers
type Options struct {
	ServiceName  string
	Repositories *repository.Repositories
	// JWT validates bearer tokens on /api; nil leaves the API open
	JWT *jwtutil.JWTUtil
}

// RegisterRoutes mounts the service endpoints on e
func RegisterRoutes(e *echo.Echo, opts Options) {
	repos := opts.Repositories

	employees := NewEmployeeHandler(repos.Employees)
	customFields := NewCustomFieldHandler(customfield.NewStore(repos.Employees))
	departments := NewDepartmentHandler(repos.Departments, repos.Employees)
	tasks := NewTaskHandler(repos.Tasks)
	reviews := NewReviewHandler(repos.Reviews)
	dashboard := NewDashboardHandler(repos)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", HealthCheck(opts.ServiceName))

	var guards []echo.MiddlewareFunc
	if opts.JWT != nil {
		guards = append(guards, mid.AuthMiddleware(opts.JWT))
	}
	api := e.Group("/api", guards...)

	employeeAPI := api.Group("/employees")
	employeeAPI.GET("", employees.ListEmployees)
	employeeAPI.GET("/search", employees.SearchEmployees)
	employeeAPI.GET("/:id", employees.GetEmployee)
	employeeAPI.POST("", employees.CreateEmployee)
	employeeAPI.PUT("/:id", employees.UpdateEmployee)
	employeeAPI.DELETE("/:id", employees.DeleteEmployee)

	fieldAPI := employeeAPI.Group("/:id/custom-fields")
	fieldAPI.GET("", customFields.ListFields)
	fieldAPI.POST("", customFields.AddField)
	fieldAPI.PUT("/:fieldId", customFields.UpdateField)
	fieldAPI.DELETE("/:fieldId", customFields.RemoveField)
	fieldAPI.PUT("/:fieldId/value", customFields.SetFieldValue)

	departmentAPI := api.Group("/departments")
	departmentAPI.GET("", departments.ListDepartments)
	departmentAPI.GET("/:id", departments.GetDepartment)
	departmentAPI.GET("/:id/employees", departments.ListDepartmentEmployees)
	departmentAPI.POST("", departments.CreateDepartment)
	departmentAPI.PUT("/:id", departments.UpdateDepartment)
	departmentAPI.DELETE("/:id", departments.DeleteDepartment)

	taskAPI := api.Group("/tasks")
	taskAPI.GET("", tasks.ListTasks)
	taskAPI.GET("/:id", tasks.GetTask)
	taskAPI.POST("", tasks.CreateTask)
	taskAPI.PUT("/:id", tasks.UpdateTask)
	taskAPI.DELETE("/:id", tasks.DeleteTask)

	reviewAPI := api.Group("/reviews")
	reviewAPI.GET("", reviews.ListReviews)
	reviewAPI.GET("/:id", reviews.GetReview)
	reviewAPI.POST("", reviews.CreateReview)
	reviewAPI.PUT("/:id", reviews.UpdateReview)
	reviewAPI.DELETE("/:id", reviews.DeleteReview)

	api.GET("/dashboard/stats", dashboard.Stats)
	api.GET("/calendar", dashboard.Calendar)
}

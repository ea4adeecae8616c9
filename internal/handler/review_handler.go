package handler

import (
	"encoding/json"
	"net/http"

	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/internal/repository"
	"github.com/apper-canvas/staffhub-core-dash/pkg/logger"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ReviewRequest defines the structure for review creation requests
type ReviewRequest struct {
	Name       string          `json:"name"`
	EmployeeID *uint           `json:"employee_id"`
	ReviewerID *uint           `json:"reviewer_id"`
	Period     string          `json:"period"`
	Ratings    json.RawMessage `json:"ratings"`
	Comments   string          `json:"comments"`
	Status     string          `json:"status"`
}

// ReviewUpdateRequest carries a partial review update
type ReviewUpdateRequest struct {
	Name       *string         `json:"name"`
	EmployeeID *uint           `json:"employee_id"`
	ReviewerID *uint           `json:"reviewer_id"`
	Period     *string         `json:"period"`
	Ratings    json.RawMessage `json:"ratings"`
	Comments   *string         `json:"comments"`
	Status     *string         `json:"status"`
}

// ReviewHandler serves /api/reviews
type ReviewHandler struct {
	repo repository.Repository[model.Review]
}

// NewReviewHandler creates the review handler
func NewReviewHandler(repo repository.Repository[model.Review]) *ReviewHandler {
	return &ReviewHandler{repo: repo}
}

func validReviewStatus(status string) bool {
	switch status {
	case model.ReviewStatusPending, model.ReviewStatusSubmitted, model.ReviewStatusCompleted:
		return true
	}
	return false
}

// ListReviews returns reviews, optionally narrowed by employee and status
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	log := logger.FromContext(c)

	criteria := query.Criteria{
		Keywords: c.QueryParam("keywords"),
		Facets: map[query.Facet]string{
			query.FacetEmployee: c.QueryParam("employee_id"),
			query.FacetStatus:   c.QueryParam("status"),
		},
	}
	log.Info("Listing reviews",
		zap.String("employee_id", criteria.Facets[query.FacetEmployee]),
		zap.String("status", criteria.Facets[query.FacetStatus]))

	reviews, err := h.repo.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Review not found", "Failed to retrieve reviews")
	}

	result := applyQuery(c, log, model.KindReview, reviews, query.Reviews, criteria, sortFromQuery(c))
	log.Info("Reviews retrieved successfully", zap.Int("count", len(result)))
	return c.JSON(http.StatusOK, result)
}

// GetReview retrieves a specific review by ID
func (h *ReviewHandler) GetReview(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}

	review, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Review not found", "Failed to retrieve review")
	}
	return c.JSON(http.StatusOK, review)
}

// CreateReview adds a new review
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new review")

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.EmployeeID == nil {
		log.Warn("Missing reviewed employee")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "employee_id is required"})
	}
	if req.Status == "" {
		req.Status = model.ReviewStatusPending
	}
	if !validReviewStatus(req.Status) {
		log.Warn("Invalid review status", zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid review status"})
	}

	review := &model.Review{
		Name:       req.Name,
		EmployeeID: req.EmployeeID,
		ReviewerID: req.ReviewerID,
		Period:     req.Period,
		Ratings:    datatypes.JSON(req.Ratings),
		Comments:   req.Comments,
		Status:     req.Status,
	}

	created, err := h.repo.Create(c.Request().Context(), review)
	if err != nil {
		return respondError(c, log, err, "Review not found", "Failed to create review")
	}

	prometheus.RecordOperation(string(model.KindReview), "create")
	log.Info("Review created successfully",
		zap.Uint("review_id", created.ID),
		zap.Uint("employee_id", *created.EmployeeID))
	return c.JSON(http.StatusCreated, created)
}

// UpdateReview applies a partial update to a review
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Updating review", zap.Uint("review_id", id))

	var req ReviewUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("review_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.Status != nil && !validReviewStatus(*req.Status) {
		log.Warn("Invalid review status", zap.String("status", *req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid review status"})
	}

	updated, err := h.repo.Update(c.Request().Context(), id, func(r *model.Review) error {
		setString(&r.Name, req.Name)
		setString(&r.Period, req.Period)
		setString(&r.Comments, req.Comments)
		setString(&r.Status, req.Status)
		if req.EmployeeID != nil {
			r.EmployeeID = req.EmployeeID
		}
		if req.ReviewerID != nil {
			r.ReviewerID = req.ReviewerID
		}
		if req.Ratings != nil {
			r.Ratings = datatypes.JSON(req.Ratings)
		}
		return nil
	})
	if err != nil {
		return respondError(c, log, err, "Review not found", "Failed to update review")
	}

	prometheus.RecordOperation(string(model.KindReview), "update")
	log.Info("Review updated successfully",
		zap.Uint("review_id", id),
		zap.String("status", updated.Status))
	return c.JSON(http.StatusOK, updated)
}

// DeleteReview removes a review
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	log := logger.FromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c, log, "id")
	}
	log.Info("Deleting review", zap.Uint("review_id", id))

	deleted, err := h.repo.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Review not found", "Failed to delete review")
	}
	if !deleted {
		log.Warn("Review not found", zap.Uint("review_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}

	prometheus.RecordOperation(string(model.KindReview), "delete")
	log.Info("Review deleted successfully", zap.Uint("review_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Review deleted successfully",
	})
}

package handler

import (
	"github.com/apper-canvas/staffhub-core-dash/internal/model"
	"github.com/apper-canvas/staffhub-core-dash/internal/query"
	"github.com/apper-canvas/staffhub-core-dash/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FallbackHeader is set when a list is served unfiltered because its query was invalid
const FallbackHeader = "X-Query-Fallback"

func sortFromQuery(c echo.Context) query.Sort {
	return query.Sort{
		Field:     c.QueryParam("sort"),
		Direction: query.Direction(c.QueryParam("direction")),
	}
}

// applyQuery runs the query engine over base. Invalid input degrades to the
// unfiltered base collection.
func applyQuery[T any](c echo.Context, log *zap.Logger, kind model.Kind, base []*T, schema query.Schema[T], criteria query.Criteria, sort query.Sort) []*T {
	if criteria.HasDateRange() {
		log.Warn("Date range filter is accepted but not applied",
			zap.String("start_date", criteria.StartDate),
			zap.String("end_date", criteria.EndDate))
	}

	if sort.Field != "" && !schema.Sortable(sort.Field) {
		log.Info("Unknown sort field, keeping stored order",
			zap.String("kind", string(kind)),
			zap.String("sort", sort.Field))
	}

	out, err := query.FilterAndSort(base, schema, criteria, sort)
	if err != nil {
		log.Warn("Invalid query, returning unfiltered list",
			zap.String("kind", string(kind)),
			zap.Error(err))
		prometheus.RecordQueryFallback(string(kind))
		c.Response().Header().Set(FallbackHeader, "true")
		return base
	}
	return out
}

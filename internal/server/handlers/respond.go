package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/server/middleware"
)

// respondError maps service errors onto HTTP statuses. Unrecognized errors
// are logged and hidden behind a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// mustActor pulls the authenticated actor out of the context; a miss means
// the route was wired without the auth middleware.
func mustActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return models.Actor{}, false
	}
	return actor, true
}

// parseDate accepts plain calendar dates and full RFC3339 timestamps, the
// two formats the dashboard sends.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// reportFilterFromQuery reads the loose report window selection.
func reportFilterFromQuery(c *gin.Context) (models.ReportFilter, error) {
	filter := models.ReportFilter{Period: c.Query("period")}

	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return models.ReportFilter{}, err
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return models.ReportFilter{}, err
		}
		filter.EndDate = &t
	}
	return filter, nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/dailylogs"
)

// DailyLogHandler handles staff field entries.
type DailyLogHandler struct {
	svc    *dailylogs.Service
	logger *zap.Logger
}

// NewDailyLogHandler constructs the HTTP handler adapter.
func NewDailyLogHandler(svc *dailylogs.Service, logger *zap.Logger) *DailyLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyLogHandler{svc: svc, logger: logger}
}

type dailyLogRequest struct {
	Date          string  `json:"date" binding:"required"`
	PenID         string  `json:"pen_id" binding:"required"`
	EggsCollected int     `json:"eggs_collected"`
	PoultryDeaths int     `json:"poultry_deaths"`
	PoultrySold   int     `json:"poultry_sold"`
	SalesAmount   float64 `json:"sales_amount"`
}

func (r dailyLogRequest) toModel() (models.DailyLog, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.DailyLog{}, err
	}
	return models.DailyLog{
		Date:          date,
		PenID:         r.PenID,
		EggsCollected: r.EggsCollected,
		PoultryDeaths: r.PoultryDeaths,
		PoultrySold:   r.PoultrySold,
		SalesAmount:   r.SalesAmount,
	}, nil
}

// Create persists a field entry.
func (h *DailyLogHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	log, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC3339"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), actor, log)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the field entries visible to the actor, date-ascending.
func (h *DailyLogHandler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns one field entry.
func (h *DailyLogHandler) Get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	log, err := h.svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// Update replaces a field entry's values.
func (h *DailyLogHandler) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	log, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC3339"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), log)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a field entry.
func (h *DailyLogHandler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

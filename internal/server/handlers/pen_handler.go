package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/pens"
)

// PenHandler handles pen CRUD.
type PenHandler struct {
	svc    *pens.Service
	logger *zap.Logger
}

// NewPenHandler constructs the HTTP handler adapter.
func NewPenHandler(svc *pens.Service, logger *zap.Logger) *PenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PenHandler{svc: svc, logger: logger}
}

type penRequest struct {
	Name        string  `json:"name" binding:"required"`
	BirdCount   int     `json:"bird_count" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	AgeWeeks    int     `json:"age_weeks"`
	DailyEggAvg float64 `json:"daily_egg_avg"`
	Mortality   float64 `json:"mortality"`
	Status      string  `json:"status"`
}

func (r penRequest) toModel() models.Pen {
	return models.Pen{
		Name:        r.Name,
		BirdCount:   r.BirdCount,
		Type:        models.PenType(r.Type),
		AgeWeeks:    r.AgeWeeks,
		DailyEggAvg: r.DailyEggAvg,
		Mortality:   r.Mortality,
		Status:      models.PenStatus(r.Status),
	}
}

// Create registers a new pen.
func (h *PenHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req penRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), actor, req.toModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the pens visible to the actor.
func (h *PenHandler) List(c *gin.Context) {
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

// Get returns one pen.
func (h *PenHandler) Get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	pen, err := h.svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pen)
}

// Update replaces a pen's mutable fields.
func (h *PenHandler) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req penRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), req.toModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a pen.
func (h *PenHandler) Delete(c *gin.Context) {
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

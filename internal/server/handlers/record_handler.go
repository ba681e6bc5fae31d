package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
	"github.com/mamadbah2/farmtrack/internal/service/records"
)

// RecordHandler handles feed and medicine purchase records.
type RecordHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter.
func NewRecordHandler(svc *records.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{svc: svc, logger: logger}
}

type recordRequest struct {
	RecordType string  `json:"record_type" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Price      float64 `json:"price"`
	Supplier   string  `json:"supplier"`
	FeedType   string  `json:"feed_type"`
	QuantityKg float64 `json:"quantity_kg"`
	Medicine   string  `json:"medicine"`
	Quantity   string  `json:"quantity"`
}

func (r recordRequest) toModel() (models.Record, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		RecordType: models.RecordType(r.RecordType),
		Date:       date,
		Price:      r.Price,
		Supplier:   r.Supplier,
		FeedType:   r.FeedType,
		QuantityKg: r.QuantityKg,
		Medicine:   r.Medicine,
		Quantity:   r.Quantity,
	}, nil
}

// Create persists a purchase record.
func (h *RecordHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	record, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC3339"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), actor, record)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the records visible to the actor, date-ascending.
func (h *RecordHandler) List(c *gin.Context) {
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

// Get returns one record.
func (h *RecordHandler) Get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	record, err := h.svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Update replaces a record's mutable fields.
func (h *RecordHandler) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	record, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC3339"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), record)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a record.
func (h *RecordHandler) Delete(c *gin.Context) {
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

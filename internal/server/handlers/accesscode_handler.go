package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/service/accesscodes"
)

// AccessCodeHandler handles invitation codes.
type AccessCodeHandler struct {
	svc    *accesscodes.Service
	logger *zap.Logger
}

// NewAccessCodeHandler constructs the HTTP handler adapter.
func NewAccessCodeHandler(svc *accesscodes.Service, logger *zap.Logger) *AccessCodeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessCodeHandler{svc: svc, logger: logger}
}

// Generate issues a new single-use code for the acting farmer.
func (h *AccessCodeHandler) Generate(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var input accesscodes.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	code, err := h.svc.Generate(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// List returns the codes issued by the acting farmer.
func (h *AccessCodeHandler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	codes, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

// Validate checks whether a code can still be redeemed. Exposed without
// authentication so the signup form can verify before submitting.
func (h *AccessCodeHandler) Validate(c *gin.Context) {
	code, err := h.svc.Validate(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "type": code.Type, "expires_at": code.ExpiresAt})
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/service/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the financial and production report endpoints.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Financial returns the expense summary for the requested window.
func (h *ReportHandler) Financial(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	filter, err := reportFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD or RFC3339"})
		return
	}

	summary, err := h.svc.FinancialReport(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Production returns the flock summary for the requested window.
func (h *ReportHandler) Production(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	filter, err := reportFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD or RFC3339"})
		return
	}

	summary, err := h.svc.ProductionReport(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export streams both summaries as a two-sheet workbook download.
func (h *ReportHandler) Export(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	filter, err := reportFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD or RFC3339"})
		return
	}

	workbook, filename, err := h.svc.ExportWorkbook(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"erpviz/dataset"
	apperrors "erpviz/server/errors"
	"erpviz/server/services"
)

// ExportHandler serves the filtered view as a CSV download.
type ExportHandler struct {
	analytics *services.AnalyticsService
	now       func() time.Time
}

// NewExportHandler creates the handler. now is injectable for tests.
func NewExportHandler(analytics *services.AnalyticsService, now func() time.Time) *ExportHandler {
	if now == nil {
		now = time.Now
	}
	return &ExportHandler{analytics: analytics, now: now}
}

// Export writes the filtered view as UTF-8 (with BOM) delimited text with a
// timestamped filename. The artifact is built in memory before any header is
// written so load failures still produce a proper error response.
// POST /api/v1/datasets/:id/export
func (h *ExportHandler) Export(c *gin.Context) {
	var req ChartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			SendError(c, apperrors.NewValidationError("invalid request body", err))
			return
		}
	}

	var buf bytes.Buffer
	if err := h.analytics.Export(c.Param("id"), req.selection(), &buf); err != nil {
		SendError(c, err)
		return
	}

	filename := dataset.ExportFilename(h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

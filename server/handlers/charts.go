package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"erpviz/charts"
	"erpviz/dataset"
	apperrors "erpviz/server/errors"
	"erpviz/server/services"
)

// ChartHandler serves the five chart transforms.
type ChartHandler struct {
	analytics *services.AnalyticsService
}

// NewChartHandler creates the handler.
func NewChartHandler(analytics *services.AnalyticsService) *ChartHandler {
	return &ChartHandler{analytics: analytics}
}

// ChartRequest carries the filter selection and chart parameters.
type ChartRequest struct {
	Years    []int    `json:"years"`
	Regions  []string `json:"regions"`
	Products []string `json:"products"`
	TopN     int      `json:"top_n"`
}

func (r ChartRequest) selection() dataset.Selection {
	return dataset.Selection{Years: r.Years, Regions: r.Regions, Products: r.Products}
}

// Chart derives one chart for the filtered view. An unmet chart precondition
// is a valid outcome, reported as an empty state with HTTP 200, never as an
// error.
// POST /api/v1/datasets/:id/charts/:kind
func (h *ChartHandler) Chart(c *gin.Context) {
	var req ChartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			SendError(c, apperrors.NewValidationError("invalid request body", err))
			return
		}
	}

	fig, err := h.analytics.Chart(c.Param("id"), c.Param("kind"), req.selection(), req.TopN)
	if err != nil {
		if charts.IsInsufficientData(err) {
			c.JSON(http.StatusOK, gin.H{
				"insufficient_data": true,
				"reason":            err.Error(),
			})
			return
		}
		SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"figure": fig})
}

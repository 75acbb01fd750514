package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"erpviz/dataset"
	apperrors "erpviz/server/errors"
	"erpviz/server/services"
)

// DatasetHandler serves dataset upload, reload, and overview requests.
type DatasetHandler struct {
	sessions  *services.SessionService
	analytics *services.AnalyticsService
	maxUpload int64
}

// NewDatasetHandler creates the handler. maxUpload bounds the accepted
// workbook size in bytes.
func NewDatasetHandler(sessions *services.SessionService, analytics *services.AnalyticsService, maxUpload int64) *DatasetHandler {
	return &DatasetHandler{sessions: sessions, analytics: analytics, maxUpload: maxUpload}
}

// UploadResponse is returned after a successful load.
type UploadResponse struct {
	SessionID string                   `json:"session_id"`
	Summary   *services.DatasetSummary `json:"summary"`
}

// Upload loads an xlsx workbook into a fresh session.
// POST /api/v1/datasets
func (h *DatasetHandler) Upload(c *gin.Context) {
	ds, err := h.readDataset(c)
	if err != nil {
		SendError(c, err)
		return
	}

	sess := h.sessions.Create(ds)
	slog.Info("dataset loaded",
		"session_id", sess.ID,
		"rows", ds.NumRows(),
		"columns", len(ds.Table.Columns),
	)

	summary, err := h.analytics.Summarize(sess.ID, dataset.Selection{})
	if err != nil {
		SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{SessionID: sess.ID, Summary: summary})
}

// Reload replaces a session's dataset from a new upload, invalidating every
// cached derivation of the session.
// PUT /api/v1/datasets/:id
func (h *DatasetHandler) Reload(c *gin.Context) {
	ds, err := h.readDataset(c)
	if err != nil {
		SendError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.sessions.Replace(id, ds); err != nil {
		SendError(c, err)
		return
	}
	slog.Info("dataset reloaded", "session_id", id, "rows", ds.NumRows())

	summary, err := h.analytics.Summarize(id, dataset.Selection{})
	if err != nil {
		SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, UploadResponse{SessionID: id, Summary: summary})
}

// Summary returns the overview and filter options for a session.
// GET /api/v1/datasets/:id
func (h *DatasetHandler) Summary(c *gin.Context) {
	summary, err := h.analytics.Summarize(c.Param("id"), dataset.Selection{})
	if err != nil {
		SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// readDataset parses and normalizes the uploaded workbook. Unreadable input
// is a 4xx load error; no partial dataset is produced.
func (h *DatasetHandler) readDataset(c *gin.Context) (*dataset.Dataset, error) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return nil, apperrors.NewValidationError("missing file field in multipart form", err)
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		return nil, apperrors.NewValidationError("uploaded file is too large", nil)
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		return nil, apperrors.NewValidationError("expected an .xlsx workbook", nil)
	}

	t, err := dataset.ReadWorkbook(file)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			return nil, apperrors.NewUnprocessableError(loadErr.Reason, err)
		}
		return nil, apperrors.NewInternalError("failed to read workbook", err)
	}

	return dataset.Normalize(t), nil
}

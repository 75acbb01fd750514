package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "erpviz/server/errors"
	"erpviz/server/middleware"
)

// SendError maps an application error onto a JSON response and logs it.
func SendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	if appErr, ok := apperrors.AsAppError(err); ok {
		status = appErr.StatusCode()
		message = appErr.Message
	}

	slog.Error("request failed",
		"error", err.Error(),
		"status_code", status,
		"request_id", middleware.GetRequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(status, gin.H{
		"error":   true,
		"message": message,
	})
}

package http

import (
	"net/http"

	"movievault/pkg/apperrors"
	"movievault/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps a usecase failure onto the HTTP error contract.
// Internal detail is logged, never returned.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		log.Error("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if appErr.Kind == apperrors.KindInternal {
		log.Error("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Unwrap())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(appErr.HTTPStatus(), body)
}

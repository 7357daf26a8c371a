package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/logger"
	"github.com/mindforge/mindforge-api/internal/pkg/observability"
)

// HandleAPIError writes err as an envelope with the matching HTTP status.
// Non-operational errors are logged and sent to the error tracker; their details never reach the client.
func HandleAPIError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)

	if !apperrors.IsOperational(err) {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestID", c.GetString(ContextRequestID)).
			Int("status", status).
			Msg("Request failed")
		observability.CaptureErr(err, map[string]string{
			"route":     c.FullPath(),
			"requestID": c.GetString(ContextRequestID),
		})
	}
	_ = c.Error(err)

	c.JSON(status, dto.Failure(status, apperrors.Message(err), apperrors.Fields(err)))
}

func abortWithError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}

// NotFoundHandler answers unknown routes with the standard envelope
func NotFoundHandler(c *gin.Context) {
	HandleAPIError(c, apperrors.NotFound("Route "+c.Request.URL.Path+" not found"))
}

// MethodNotAllowedHandler answers routes hit with the wrong verb
func MethodNotAllowedHandler(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.Failure(http.StatusMethodNotAllowed, "Method not allowed", nil))
}

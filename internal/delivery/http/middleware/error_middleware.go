package middleware

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString(string(domain.KeyRequestID))

		appErr, ok := apperror.As(err)
		if !ok {
			// Never expose internal error details to clients
			logger.Log.Error("unhandled error", "request_id", reqID, "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("request failed", "request_id", reqID, "path", c.FullPath(), "status", appErr.Code, "error", appErr.Err)
		}

		var detail interface{}
		if len(appErr.Fields) > 0 {
			detail = appErr.Fields
		}
		response.Error(c, appErr.Code, appErr.Message, detail)
	}
}

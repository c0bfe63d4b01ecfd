package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					logger.Log.WithFields(logrus.Fields{
						"path":   c.FullPath(),
						"method": c.Request.Method,
						"error":  appErr.Err,
					}).Error("request failed")
				}
				if len(appErr.Details) > 0 {
					response.ValidationError(c, appErr.Code, appErr.Message, appErr.Details)
				} else {
					response.Error(c, appErr.Code, appErr.Message, nil)
				}
			} else {
				// SECURITY: Never expose internal error details to clients.
				// Log the actual error server-side for debugging, but send a
				// generic message to the user to prevent information disclosure.
				logger.Log.WithFields(logrus.Fields{
					"path":   c.FullPath(),
					"method": c.Request.Method,
					"error":  err.Error(),
				}).Error("unhandled error")
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}

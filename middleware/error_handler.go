package middleware

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/gin-gonic/gin"
)

// CodeTokenExpired marks a 401 the client can recover from by refreshing.
const CodeTokenExpired = "token_expired"

// RefreshEndpoint is advertised to clients holding an expired token.
const RefreshEndpoint = "/api/auth/refresh"

// ErrorHandler renders the last error attached to the context. Handlers
// only call c.Error; the body shape is decided here.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		err := last.Err

		var appError *apperrors.AppError
		if errors.As(err, &appError) {
			statusCode := appError.HTTPStatus
			if statusCode == 0 {
				statusCode = apperrors.StatusFor(appError.Type)
			}

			if statusCode >= http.StatusInternalServerError {
				logger.LogHTTPError(c, err, statusCode, string(appError.Type)+" error")
			} else {
				logger.GetLogger().Infow("Request rejected",
					"type", appError.Type,
					"status", statusCode,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey))
			}

			response := gin.H{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}
			if appError.Code != "" {
				response["code"] = appError.Code
			}

			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == apperrors.ValidationError ||
				appError.Type == apperrors.NotFoundError ||
				appError.Type == apperrors.ConflictError ||
				appError.Type == apperrors.InsufficientStockError ||
				appError.Type == apperrors.InvalidStatusTransitionError) {
				response["details"] = appError.Detail
			}

			if appError.Code == CodeTokenExpired {
				response["refresh_endpoint"] = RefreshEndpoint
				response["refresh_required"] = true
			}

			if appError.Type == apperrors.RateLimitError {
				if retry := c.Writer.Header().Get("Retry-After"); retry != "" {
					response["retry_after"] = retry
				}
			}

			c.JSON(statusCode, response)
			return
		}

		if last.Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			response := gin.H{
				"type":    string(apperrors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			}
			if gin.IsDebugging() {
				response["details"] = err.Error()
			}
			c.JSON(http.StatusBadRequest, response)
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		response := gin.H{
			"type":    string(apperrors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}
		if gin.IsDebugging() {
			response["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response)
	}
}

package utils

import (
	"github.com/altai/formrelay/internal/api/constants"
	"github.com/altai/formrelay/internal/api/dto/common"
	"github.com/altai/formrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err server-side and answers with message only.
// Error details never reach the caller.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetGlobalLogger()
	if status >= 500 {
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			GetRealIP(c),
			status,
			message+" ["+c.GetString(constants.ContextKeyRequestID)+"]",
			err,
		)
	} else {
		logger.Debug("%s %s -> %d %s: %v", c.Request.Method, c.Request.URL.Path, status, message, err)
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}

// HandleFieldError answers 400 naming the field that failed validation
func HandleFieldError(c *gin.Context, status int, field, message string) {
	logging.GetGlobalLogger().Debug("%s %s -> %d field %s", c.Request.Method, c.Request.URL.Path, status, field)
	c.AbortWithStatusJSON(status, common.NewFieldErrorResponse(field, message))
}

package middleware

import (
	"time"

	"github.com/altai/formrelay/internal/api/constants"
	"github.com/altai/formrelay/internal/logging"
	"github.com/altai/formrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. The logger decides whether
// request lines are enabled.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}

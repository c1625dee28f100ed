package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/altai/formrelay/internal/api/constants"
	"github.com/altai/formrelay/internal/api/dto/common"
	"github.com/altai/formrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic 500 body and logs the stack
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(constants.ContextKeyRequestID),
					fmt.Sprint(err),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MsgInternalError))
			}
		}()

		c.Next()
	}
}

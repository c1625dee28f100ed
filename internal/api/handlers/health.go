package handlers

import (
	"net/http"

	"github.com/altai/formrelay/internal/api/dto/common"
	"github.com/altai/formrelay/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness. The relay keeps no state, so there is nothing
// else to probe.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.HealthResponse{
		Status:  "ok",
		Version: version.Version,
	})
}

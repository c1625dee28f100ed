package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP behind the platform proxy. The result
// is only a hint for reCAPTCHA and logs, never an authorization input.
func GetRealIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("X-Nf-Client-Connection-Ip")); ip != "" {
		return ip
	}

	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	// X-Forwarded-For is "client, proxy1, proxy2"; the leftmost entry is the client
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		if clientIP := strings.TrimSpace(strings.Split(forwardedFor, ",")[0]); clientIP != "" {
			return clientIP
		}
	}

	return c.ClientIP()
}

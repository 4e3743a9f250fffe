package app

import (
	"github.com/gin-gonic/gin"
)

// metricsRealm is advertised in WWW-Authenticate on 401 responses.
const metricsRealm = "metrics"

// metricsAuthMiddleware enforces Basic Auth for /metrics when enabled.
// Credentials are compared in constant time by gin.
func metricsAuthMiddleware(enabled bool, username, password string) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return gin.BasicAuthForRealm(gin.Accounts{username: password}, metricsRealm)
}

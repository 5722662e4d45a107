package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// appPasswordHeader carries the shared access password of the table UI.
const appPasswordHeader = "X-App-Password"

// corsMiddleware allows the browser-based table UI to call the API from any
// origin. The password gate is the actual access control.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+appPasswordHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// passwordGate rejects requests whose password header does not match. An empty
// configured password disables the gate.
func passwordGate(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password != "" && c.GetHeader(appPasswordHeader) != password {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid application password"})
			return
		}
		c.Next()
	}
}

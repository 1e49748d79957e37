package httpserver

import (
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const cronAuthHeader = "x-cron-auth"

// cleanupHandler deletes sessions older than the retention window. It is
// triggered by an external scheduler and fails closed: no configured
// secret means no access.
func cleanupHandler(cleaner SessionCleaner, secret string, retention time.Duration, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(cronAuthHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(header), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		cutoff := time.Now().UTC().Add(-retention)
		deleted, err := cleaner.DeleteBefore(c.Request.Context(), cutoff)
		if err != nil {
			logger.Printf("session cleanup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "cleanup failed"})
			return
		}
		logger.Printf("session cleanup removed %d sessions older than %s", deleted, cutoff.Format(time.RFC3339))
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}

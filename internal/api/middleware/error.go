package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hybrid-dispatch/internal/logging"
)

// Recovery converts panics into the uniform error envelope instead of
// killing the connection.
func Recovery() gin.HandlerFunc {
	log := logging.New("api")
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "An unexpected error occurred",
			},
		})
		c.Abort()
	})
}

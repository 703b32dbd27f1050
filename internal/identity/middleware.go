package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderUserID carries the already-authenticated caller id. The gateway
// in front of this service is responsible for authentication; this
// service only trusts the header it forwards.
const HeaderUserID = "X-Sharer-User-Id"

// Required is a Gin middleware that extracts the caller id from
// X-Sharer-User-Id and rejects requests without a valid one.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderUserID)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + HeaderUserID + " header",
			})
			return
		}

		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid " + HeaderUserID + " header",
			})
			return
		}

		// Store caller info into Gin context for later handlers.
		c.Set("userID", id)

		c.Next()
	}
}

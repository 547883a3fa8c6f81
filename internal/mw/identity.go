// Package mw holds the gin middleware used by the HTTP layer.
package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerUserHeader carries the caller's user id on every identity-bound call.
const SharerUserHeader = "X-Sharer-User-Id"

const userIDKey = "userID"

// Identity extracts the caller's user id from the X-Sharer-User-Id header
// and stores it on the request context. Requests without a parseable id are
// rejected before reaching any handler.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerUserHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + SharerUserHeader + " header"})
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed " + SharerUserHeader + " header"})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// GetUserID returns the caller's user id placed by Identity.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDHeader carries the id of the user acting on the request.
	UserIDHeader = "X-Okapi-User-Id"
	// UserIDKey is the context key for the acting user's ID.
	UserIDKey ContextKey = "user_id"
)

// UserContext stores the acting user's id from the request headers in the context.
// The header is optional; a malformed value is rejected.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(UserIDHeader)
		if header == "" {
			c.Next()
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid " + UserIDHeader + " header",
				Details: err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the acting user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

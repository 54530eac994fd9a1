// internal/middleware/helpers.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// MustGetIdentityID gets the identity ID from context or panics. Only for
// handlers mounted behind Auth().
func MustGetIdentityID(c *gin.Context) int64 {
	identityID, exists := GetIdentityID(c)
	if !exists {
		panic("identity_id not found in context")
	}
	return identityID
}

// MustGetJTI gets the token ID from context or panics.
func MustGetJTI(c *gin.Context) string {
	jti, exists := GetJTI(c)
	if !exists {
		panic("jti not found in context")
	}
	return jti
}

// GetTokenExpiry returns the current token's expiry, zero when anonymous.
func GetTokenExpiry(c *gin.Context) time.Time {
	v, exists := c.Get("token_expiry")
	if !exists {
		return time.Time{}
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}
	}
	return t
}

// IsAuthenticated reports whether the request carries a valid session.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("identity_id")
	return exists
}

// GetDraftSession reads the draft session ID the client carries on every
// listing-flow request. Header first, query fallback for websocket
// handshakes.
func GetDraftSession(c *gin.Context) string {
	if id := c.GetHeader("X-Draft-Session"); id != "" {
		return id
	}
	return c.Query("draft_session")
}

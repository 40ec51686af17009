package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/access"
	"devs-society/backend/pkg/response"
)

// Context keys written by the auth middleware
const (
	ContextIdentity = "identity"
	ContextTokenJTI = "token_jti"
	ContextTokenExp = "token_exp"
)

// MustGetIdentity extracts the authenticated caller from the gin context.
// When the auth middleware did not run it writes a 401 and returns false;
// callers return immediately on ok=false.
func MustGetIdentity(c *gin.Context) (*access.Identity, bool) {
	v, exists := c.Get(ContextIdentity)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
		return nil, false
	}
	id, ok := v.(*access.Identity)
	if !ok || id == nil || id.SubjectID == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
		return nil, false
	}
	return id, true
}

// tokenMeta returns the jti and expiry of the bearer token of this request
func tokenMeta(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ContextTokenJTI)
	exp, _ := c.Get(ContextTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}

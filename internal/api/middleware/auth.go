package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/access"
	"devs-society/backend/pkg/jwt"
	"devs-society/backend/pkg/response"
)

// Context keys read by handler.MustGetIdentity
const (
	identityKey = "identity"
	tokenJTIKey = "token_jti"
	tokenExpKey = "token_exp"
)

// TokenChecker reports revoked token ids. *redis.Client satisfies it.
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// UserAuth accepts member tokens only.
// blacklist may be nil, in which case revocation is not checked.
func UserAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return tokenAuth(jwtMgr, blacklist, jwt.TypeUser)
}

// AdminAuth accepts admin tokens only. Permissions are re-derived from the role.
func AdminAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return tokenAuth(jwtMgr, blacklist, jwt.TypeAdmin)
}

func tokenAuth(jwtMgr *jwt.Manager, blacklist TokenChecker, tokenType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthorized(c, "invalid authorization header")
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthorized(c, "token expired")
				return
			}
			unauthorized(c, "invalid token")
			return
		}

		if claims.TokenType != tokenType {
			unauthorized(c, "invalid token type")
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis errors degrade open
			if err == nil && revoked {
				unauthorized(c, "token revoked")
				return
			}
		}

		var identity *access.Identity
		if tokenType == jwt.TypeAdmin {
			identity = access.NewAdminIdentity(claims.SubjectID, claims.Role, claims.CollegeID)
		} else {
			identity = access.NewUserIdentity(claims.SubjectID, claims.Role)
		}

		c.Set(identityKey, identity)
		c.Set(tokenJTIKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(tokenExpKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequirePermission admits admins holding every listed permission
func RequirePermission(perms ...access.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(identityKey)
		if !exists {
			unauthorized(c, "authentication required")
			return
		}
		identity, ok := v.(*access.Identity)
		if !ok {
			unauthorized(c, "authentication required")
			return
		}

		if err := identity.Authorize(perms...); err != nil {
			response.Forbidden(c, response.CodeForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	response.Unauthorized(c, response.CodeUnauthorized, message)
	c.Abort()
}

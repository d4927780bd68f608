package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/modules/authz"
	"github.com/meridian-institute/core/internal/modules/identity"
	"github.com/meridian-institute/core/internal/pkg/response"
)

const ContextKeyIdentity = "identity"

// Identity resolves the session credential on every request and never
// blocks; unauthenticated callers continue as Anonymous.
func Identity(resolver *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyIdentity, resolver.Resolve(extractToken(c)))
		c.Next()
	}
}

// RequireMember aborts unless the caller is an authenticated member or admin.
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsMember() {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts unless the caller's profile carries the team-member flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id.Role == authz.RoleAnonymous {
			response.Unauthorized(c)
			return
		}
		if !id.IsAdmin() {
			response.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

// CurrentIdentity extracts the resolved identity, Anonymous when unset.
func CurrentIdentity(c *gin.Context) authz.Identity {
	v, ok := c.Get(ContextKeyIdentity)
	if !ok {
		return authz.Anonymous
	}
	id, ok := v.(authz.Identity)
	if !ok {
		return authz.Anonymous
	}
	return id
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return normalizeToken(auth)
	}
	return normalizeToken(c.Query("token"))
}

// normalizeToken trims spaces and strips the optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

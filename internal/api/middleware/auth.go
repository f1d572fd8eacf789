package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity returns the caller identity set by Authenticate or Identify; the
// zero value is the anonymous caller.
func Identity(c *gin.Context) permissions.Identity {
	if v, exists := c.Get(identityKey); exists {
		if ident, ok := v.(permissions.Identity); ok {
			return ident
		}
	}
	return permissions.Identity{}
}

func identityFromClaims(claims *service.Claims) permissions.Identity {
	return permissions.Identity{
		UserID:        claims.UserID,
		Username:      claims.Username,
		Role:          permissions.Role(claims.Role),
		Superuser:     claims.Superuser,
		Authenticated: true,
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Authenticate requires a valid access token. It resolves the identity and
// stores it in the request context for handlers and services.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identityFromClaims(claims))
		c.Next()
	}
}

// Identify resolves the identity when a token is present but lets anonymous
// requests through; used on groups whose reads are public. A present but
// invalid token is still rejected rather than silently downgraded.
func Identify(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identityFromClaims(claims))
		c.Next()
	}
}

// RequireAuthenticated is the phase-1 gate for author-scoped mutations:
// authentication is enough to attempt the write, the object-level decision
// happens after the target is loaded.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Identity(c).Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOrReadOnly is the phase-1 gate for catalog resources: safe methods
// pass for everyone, mutations require the admin role or the superuser
// override.
func AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := Identity(c)
		if permissions.AdminOrReadOnly(ident, c.Request.Method) {
			c.Next()
			return
		}
		if !ident.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		}
		c.Abort()
	}
}

// AdminOnly gates user management; every method requires admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permissions.AdminOnly(Identity(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

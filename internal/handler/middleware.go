package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glum-catalog/backend/internal/auth"
)

const principalKey = "auth_principal"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// SessionGuard resolves the bearer token to a live principal before any
// business logic runs. Every protected route sits behind it.
func SessionGuard(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		principal, err := authService.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrPrincipalNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			default:
				log.Printf("[Auth] Authentication failed unexpectedly: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			}
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole gates a route on an exact role. Runs after SessionGuard, so
// a missing principal here is a wiring bug and maps to 401.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if err := auth.RequireRole(principal, role); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(auth.Principal); ok {
			return principal, true
		}
	}
	return auth.Principal{}, false
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

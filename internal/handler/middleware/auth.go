package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"carrental/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware extracts the caller from a bearer token issued by the
// external identity provider. This service never issues tokens.
type AuthMiddleware struct {
	secret []byte
}

const (
	ctxPrincipalEmailKey = "principal_email"
	ctxUserRoleKey       = "user_role"

	RoleAdmin = "admin"
)

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Secret)}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}
		tokenStr := strings.TrimSpace(authHeader[len("Bearer "):])

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			slog.Warn("token validation failed in auth middleware", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		if email == "" {
			// Identity provider puts the email into sub when no email claim
			// is present.
			email, _ = claims["sub"].(string)
		}
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Token carries no identity",
			})
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ctxPrincipalEmailKey, email)
		c.Set(ctxUserRoleKey, role)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok || role != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetPrincipalEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxPrincipalEmailKey)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}

func GetUserRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

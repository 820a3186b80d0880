package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/pkg/config"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware validates JWT bearer tokens and sets the caller's
// identity in the request context.
func AuthMiddleware(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(401, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Token required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(401, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		username, _ := claims["username"].(string)
		roleStr, _ := claims["role"].(string)
		role := domain.Role(roleStr)
		if !role.Valid() {
			logger.Warn("token carries unknown role, demoting to listener",
				zap.String("user_id", userID),
				zap.String("role", roleStr))
			role = domain.RoleListener
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, username)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller holds one
// of the allowed roles. Must run after AuthMiddleware.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(401, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		role, ok := value.(domain.Role)
		if !ok {
			c.JSON(401, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		for _, want := range allowed {
			if role == want {
				c.Next()
				return
			}
		}

		c.JSON(403, gin.H{"error": "Insufficient role"})
		c.Abort()
	}
}

// IdentityFromContext rebuilds the caller identity set by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return domain.Identity{}, false
	}

	identity := domain.Identity{UserID: id, Role: domain.RoleListener}
	if username, ok := c.Get(ContextUsername); ok {
		identity.Username, _ = username.(string)
	}
	if role, ok := c.Get(ContextRole); ok {
		if r, ok := role.(domain.Role); ok {
			identity.Role = r
		}
	}
	return identity, true
}

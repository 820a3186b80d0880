package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func createTestConfig(secret string) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      secret,
			ExpiryHours: 1,
		},
	}
}

func createToken(secret, userID, username string, role domain.Role, ttl time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"exp":      time.Now().Add(ttl).Unix(),
	})
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

func protectedRouter(cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(cfg, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(200, gin.H{"user_id": identity.UserID, "role": string(identity.Role)})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := protectedRouter(createTestConfig("secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != 401 {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := protectedRouter(createTestConfig("secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	if w.Code != 401 {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := createTestConfig("secret")
	router := protectedRouter(cfg)

	token := createToken("secret", "user-1", "alice", domain.RoleListener, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	cfg := createTestConfig("secret")
	router := protectedRouter(cfg)

	token := createToken("secret", "user-1", "alice", domain.RoleListener, -time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != 401 {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	cfg := createTestConfig("secret")
	router := protectedRouter(cfg)

	token := createToken("other-secret", "user-1", "alice", domain.RoleListener, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != 401 {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	cfg := createTestConfig("secret")
	router := protectedRouter(cfg, RequireRole(domain.RoleDJ, domain.RoleAdmin))

	token := createToken("secret", "dj-1", "dj-dax", domain.RoleDJ, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	cfg := createTestConfig("secret")
	router := protectedRouter(cfg, RequireRole(domain.RoleAdmin))

	token := createToken("secret", "user-1", "alice", domain.RoleListener, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != 403 {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAuthMiddleware_UnknownRoleDemotedToListener(t *testing.T) {
	cfg := createTestConfig("secret")
	router := protectedRouter(cfg, RequireRole(domain.RoleAdmin))

	token := createToken("secret", "user-1", "alice", "superuser", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != 403 {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(t *testing.T) (*gin.Engine, *jwt.JWTService) {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret-for-middleware", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			t.Fatal("expected user id on context")
		}
		c.String(http.StatusOK, userID)
	})
	return router, jwtService
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, jwtService := newProtectedRouter(t)

	token, err := jwtService.GenerateToken("user-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "user-42" {
		t.Fatalf("expected user-42 in context, got %q", w.Body.String())
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	router, _ := newProtectedRouter(t)

	expiredService, err := jwt.NewJWTService("test-secret-for-middleware", -time.Minute)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	expired, err := expiredService.GenerateToken("user-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{"missing header", "", "No token provided"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "No token provided"},
		{"empty bearer", "Bearer ", "No token provided"},
		{"garbage token", "Bearer not.a.token", "Invalid or expired token"},
		{"expired token", "Bearer " + expired, "Invalid or expired token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantMessage) {
				t.Fatalf("expected body to contain %q, got %s", tc.wantMessage, w.Body.String())
			}
		})
	}
}

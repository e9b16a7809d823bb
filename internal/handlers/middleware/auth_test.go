package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/querypro-backend/internal/domain/ports"
)

// stubTokenService aceita apenas o token "valid-token"
type stubTokenService struct{}

func (stubTokenService) Generate(userID, email, role string) (string, error) {
	return "valid-token", nil
}

func (stubTokenService) Validate(token string) (*ports.TokenClaims, error) {
	if token != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return &ports.TokenClaims{UserID: "user-123", Email: "ana@example.com", Role: "admin"}, nil
}

func setupAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(stubTokenService{})
	router := gin.New()

	handlers := append([]gin.HandlerFunc{m.RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(UserIDContextKey),
			"role":    c.GetString(UserRoleContextKey),
		})
	})
	router.GET("/protected", handlers...)

	return router
}

func TestRequireAuth(t *testing.T) {
	t.Run("sem header retorna 401", func(t *testing.T) {
		router := setupAuthRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava status 401, obteve %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("esperava Content-Type application/problem+json, obteve %s", ct)
		}
	})

	t.Run("header sem prefixo Bearer retorna 401", func(t *testing.T) {
		router := setupAuthRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "valid-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava status 401, obteve %d", w.Code)
		}
	})

	t.Run("token inválido retorna 401", func(t *testing.T) {
		router := setupAuthRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer wrong-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("esperava status 401, obteve %d", w.Code)
		}
	})

	t.Run("token válido injeta identidade no contexto", func(t *testing.T) {
		router := setupAuthRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("esperava status 200, obteve %d", w.Code)
		}
		body := w.Body.String()
		if body != `{"role":"admin","user_id":"user-123"}` {
			t.Errorf("resposta inesperada: %s", body)
		}
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("papel permitido passa", func(t *testing.T) {
		m := NewAuthMiddleware(stubTokenService{})
		router := setupAuthRouter(m.RequireRole("admin"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("esperava status 200, obteve %d", w.Code)
		}
	})

	t.Run("papel não permitido retorna 403", func(t *testing.T) {
		m := NewAuthMiddleware(stubTokenService{})
		router := setupAuthRouter(m.RequireRole("guest"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("esperava status 403, obteve %d", w.Code)
		}
	})
}

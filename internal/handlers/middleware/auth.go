package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/querypro-backend/internal/domain/errors"
	"github.com/rafabene/querypro-backend/internal/domain/ports"
	"github.com/rafabene/querypro-backend/internal/infrastructure/i18n"
)

const (
	// UserIDContextKey é a chave usada para armazenar o ID do usuário autenticado
	UserIDContextKey = "user_id"
	// UserRoleContextKey é a chave usada para armazenar o papel do usuário autenticado
	UserRoleContextKey = "user_role"
)

// AuthMiddleware valida o token bearer das requisições protegidas
type AuthMiddleware struct {
	tokenService ports.TokenService
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(tokenService ports.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// RequireAuth exige um token bearer válido e injeta a identidade no contexto
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWithProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized")
			return
		}

		claims, err := m.tokenService.Validate(token)
		if err != nil {
			abortWithProblem(c, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized")
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Set(UserRoleContextKey, claims.Role)

		c.Next()
	}
}

// RequireRole exige que o usuário autenticado tenha um dos papéis informados
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleContextKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		abortWithProblem(c, http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden")
	}
}

// abortWithProblem encerra a requisição com um problema RFC 7807 traduzido
func abortWithProblem(c *gin.Context, status int, problemType, keyPrefix string) {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.DefaultProblem{
		Type:     baseURL + problemType,
		Title:    translate(c, keyPrefix+".title"),
		Status:   status,
		Detail:   translate(c, keyPrefix+".detail"),
		Instance: c.Request.URL.Path,
	}

	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(status, problem)
}

// translate busca o serviço i18n no contexto e traduz a chave; sem serviço
// configurado a própria chave é devolvida.
func translate(c *gin.Context, key string) string {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}

	service, ok := value.(*i18n.Service)
	if !ok {
		return key
	}

	lang, _ := c.Get(LanguageContextKey)
	langStr, _ := lang.(string)
	if langStr == "" {
		langStr = service.GetDefaultLanguage()
	}

	return service.T(langStr, key)
}

package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/querypro-backend/internal/domain/errors"
)

// Problem é a resposta de erro RFC 7807 (Problem Details for HTTP APIs),
// estendendo o problema padrão com a lista de erros de campo.
type Problem struct {
	problems.DefaultProblem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// RespondProblem escreve o problema com o media type application/problem+json
func RespondProblem(c *gin.Context, p Problem) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.JSON(p.Status, p)
}

// NewProblem cria um problema RFC 7807 com o tipo ancorado na base URL
func NewProblem(c *gin.Context, problemType, title string, status int, detail string) Problem {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return Problem{
		DefaultProblem: problems.DefaultProblem{
			Type:     baseURL + problemType,
			Title:    title,
			Status:   status,
			Detail:   detail,
			Instance: c.Request.URL.Path,
		},
	}
}

// NewProblemI18n cria um problema RFC 7807 com título e detalhe traduzidos
func NewProblemI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) Problem {
	title := T(c, titleKey, params...)
	detail := T(c, detailKey, params...)
	return NewProblem(c, problemType, title, status, detail)
}

// Helpers para os problemas recorrentes da API

// ValidationProblemI18n cria um problema 400 de validação com erros de campo
func ValidationProblemI18n(c *gin.Context, validationErrors []ValidationError) Problem {
	problem := NewProblemI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		400,
	)
	problem.Errors = validationErrors
	return problem
}

// InvalidQueryProblemI18n cria um problema 400 para consulta dinâmica malformada.
// O detalhe carrega a razão estrutural reportada pelo compilador de consultas.
func InvalidQueryProblemI18n(c *gin.Context, reason string) Problem {
	problem := NewProblemI18n(
		c,
		errors.ProblemTypeInvalidQuery,
		"error.invalid_query.title",
		"error.invalid_query.detail",
		400,
	)
	if reason != "" {
		problem.Detail = reason
	}
	return problem
}

// NotFoundProblemI18n cria um problema 404
func NotFoundProblemI18n(c *gin.Context, resource string) Problem {
	return NewProblemI18n(
		c,
		errors.ProblemTypeNotFound,
		"error.not_found.title",
		"error.not_found.detail",
		404,
		map[string]interface{}{"Resource": resource},
	)
}

// ConflictProblemI18n cria um problema 409
func ConflictProblemI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) Problem {
	return NewProblemI18n(
		c,
		errors.ProblemTypeConflict,
		"error.conflict.title",
		detailKey,
		409,
		params...,
	)
}

// UnauthorizedProblemI18n cria um problema 401
func UnauthorizedProblemI18n(c *gin.Context) Problem {
	return NewProblemI18n(
		c,
		errors.ProblemTypeUnauthorized,
		"error.unauthorized.title",
		"error.unauthorized.detail",
		401,
	)
}

// ForbiddenProblemI18n cria um problema 403
func ForbiddenProblemI18n(c *gin.Context) Problem {
	return NewProblemI18n(
		c,
		errors.ProblemTypeForbidden,
		"error.forbidden.title",
		"error.forbidden.detail",
		403,
	)
}

// InternalProblemI18n cria um problema 500
func InternalProblemI18n(c *gin.Context) Problem {
	return NewProblemI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		500,
	)
}

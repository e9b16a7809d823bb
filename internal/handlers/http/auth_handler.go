package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/querypro-backend/internal/domain/errors"
	"github.com/rafabene/querypro-backend/internal/domain/ports"
	"github.com/rafabene/querypro-backend/internal/handlers/dto"
	"github.com/rafabene/querypro-backend/internal/services"
)

// AuthHandler lida com autenticação
type AuthHandler struct {
	userService  *services.UserService
	tokenService ports.TokenService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(userService *services.UserService, tokenService ports.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Login autentica o usuário e emite um token de acesso
//
//	@Summary		Login
//	@Description	Autentica por email e senha e devolve um token bearer JWT
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequest	true	"Credenciais"
//	@Success		200		{object}	dto.LoginResponse
//	@Failure		400		{object}	dto.Problem
//	@Failure		401		{object}	dto.Problem
//	@Router			/api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationProblemI18n(c, bindingErrors(err)))
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, errors.ErrInvalidCredentials) {
			dto.RespondProblem(c, dto.UnauthorizedProblemI18n(c))
			return
		}
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	token, err := h.tokenService.Generate(user.ID, user.Email.String(), string(user.Role))
	if err != nil {
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        dto.ToUserResponse(user),
	})
}

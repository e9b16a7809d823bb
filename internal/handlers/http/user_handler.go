package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/querypro-backend/internal/domain/dynamic"
	"github.com/rafabene/querypro-backend/internal/domain/entities"
	"github.com/rafabene/querypro-backend/internal/domain/errors"
	"github.com/rafabene/querypro-backend/internal/domain/repositories"
	"github.com/rafabene/querypro-backend/internal/handlers/dto"
	"github.com/rafabene/querypro-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser cria um novo usuário
//
//	@Summary		Criar usuário
//	@Description	Cria um novo usuário com email único e senha em hash
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateUserRequest	true	"Dados do usuário"
//	@Success		201		{object}	dto.UserResponse
//	@Failure		400		{object}	dto.Problem
//	@Failure		409		{object}	dto.Problem
//	@Router			/api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationProblemI18n(c, bindingErrors(err)))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrEmailAlreadyExists):
			dto.RespondProblem(c, dto.ConflictProblemI18n(c, "error.conflict.email_exists"))
		case errs.Is(err, errors.ErrInvalidEmail):
			dto.RespondProblem(c, dto.ValidationProblemI18n(c, []dto.ValidationError{
				{Field: "email", Message: dto.T(c, "error.invalid_email")},
			}))
		default:
			dto.RespondProblem(c, dto.InternalProblemI18n(c))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUser busca um usuário por ID
//
//	@Summary	Buscar usuário
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.Problem
//	@Security	BearerAuth
//	@Router		/api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			dto.RespondProblem(c, dto.NotFoundProblemI18n(c, "User"))
			return
		}
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários com filtros fixos
//
//	@Summary	Listar usuários
//	@Tags		users
//	@Produce	json
//	@Param		role		query		string	false	"Filtrar por papel"	Enums(admin, user, guest)
//	@Param		page		query		int		false	"Página (começa em 1)"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{array}		dto.UserResponse
//	@Security	BearerAuth
//	@Router		/api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if role := c.Query("role"); role != "" {
		r := entities.Role(role)
		filters.Role = &r
	}

	users, err := h.userService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// SearchUsers aplica uma consulta dinâmica de filtro e ordenação
//
//	@Summary		Busca dinâmica de usuários
//	@Description	Compila a árvore de filtros e a lista de ordenação enviadas pelo cliente e devolve a página correspondente
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			page	query		int				false	"Índice da página (começa em 0)"
//	@Param			size	query		int				false	"Itens por página"
//	@Param			query	body		dynamic.Query	true	"Filtro e ordenação dinâmicos"
//	@Success		200		{object}	dto.UserPageResponse
//	@Failure		400		{object}	dto.Problem
//	@Security		BearerAuth
//	@Router			/api/v1/users/search [post]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	var query dynamic.Query

	if err := c.ShouldBindJSON(&query); err != nil {
		dto.RespondProblem(c, dto.InvalidQueryProblemI18n(c, ""))
		return
	}

	page := queryInt(c, "page", 0)
	size := queryInt(c, "size", 20)

	result, err := h.userService.SearchUsers(c.Request.Context(), query, page, size)
	if err != nil {
		if dynamic.IsStructural(err) {
			dto.RespondProblem(c, dto.InvalidQueryProblemI18n(c, err.Error()))
			return
		}
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserPageResponse(result))
}

// UpdateUser atualiza um usuário
//
//	@Summary	Atualizar usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"ID do usuário"
//	@Param		request	body		dto.UpdateUserRequest	true	"Campos a atualizar"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.Problem
//	@Failure	404		{object}	dto.Problem
//	@Security	BearerAuth
//	@Router		/api/v1/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondProblem(c, dto.ValidationProblemI18n(c, bindingErrors(err)))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), services.UpdateUserInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			dto.RespondProblem(c, dto.NotFoundProblemI18n(c, "User"))
			return
		}
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove um usuário
//
//	@Summary	Remover usuário
//	@Tags		users
//	@Param		id	path	string	true	"ID do usuário"
//	@Success	204
//	@Failure	404	{object}	dto.Problem
//	@Security	BearerAuth
//	@Router		/api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errs.Is(err, errors.ErrUserNotFound) {
			dto.RespondProblem(c, dto.NotFoundProblemI18n(c, "User"))
			return
		}
		dto.RespondProblem(c, dto.InternalProblemI18n(c))
		return
	}

	c.Status(http.StatusNoContent)
}

// bindingErrors converte erros do validator em erros de campo da resposta
func bindingErrors(err error) []dto.ValidationError {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		return nil
	}

	out := make([]dto.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, dto.ValidationError{
			Field:   fe.Field(),
			Message: fe.Error(),
			Tag:     fe.Tag(),
		})
	}
	return out
}

// queryInt lê um parâmetro de query inteiro com valor padrão
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

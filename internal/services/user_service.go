package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/querypro-backend/internal/domain/dynamic"
	"github.com/rafabene/querypro-backend/internal/domain/entities"
	"github.com/rafabene/querypro-backend/internal/domain/errors"
	"github.com/rafabene/querypro-backend/internal/domain/ports"
	"github.com/rafabene/querypro-backend/internal/domain/repositories"
	"github.com/rafabene/querypro-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		uow:      uow,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// CreateUser cria um novo usuário com a senha em hash bcrypt
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	s.logger.Info("creating user", "email", input.Email)

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Verificação de unicidade e inserção na mesma transação
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}
		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "id", user.ID)
	return user, nil
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros fixos
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	return s.userRepo.List(ctx, filters)
}

// SearchUsers aplica uma consulta dinâmica paginada. Erros estruturais da
// consulta sobem como estão: o handler os apresenta como erro de validação
// da entrada do cliente, não como falha do servidor.
func (s *UserService) SearchUsers(ctx context.Context, query dynamic.Query, page, size int) (*repositories.Page[*entities.User], error) {
	return s.userRepo.Search(ctx, query, page, size)
}

// UpdateUserInput representa os dados atualizáveis de um usuário
type UpdateUserInput struct {
	Name      *string
	AvatarURL *string
}

// UpdateUser atualiza os campos mutáveis de um usuário
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "id", user.ID)
	return user, nil
}

// Authenticate verifica as credenciais e retorna o usuário autenticado.
// Email inexistente e senha incorreta produzem o mesmo erro para não
// vazar quais contas existem.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", "email", normalized.String())
		return nil, errors.ErrInvalidCredentials
	}

	return user, nil
}

// DeleteUser remove (soft delete) um usuário
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.ErrUserNotFound
	}
	return s.userRepo.Delete(ctx, id)
}

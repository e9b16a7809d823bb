package repositories

import (
	"context"

	"github.com/rafabene/querypro-backend/internal/domain/dynamic"
	"github.com/rafabene/querypro-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)

	// Search compila a consulta dinâmica contra o schema de usuários e a
	// aplica com push-down no backend: o predicado e a ordenação são
	// avaliados pela fonte de dados, sem materializar tudo em memória.
	// Erros estruturais da consulta são devolvidos antes de qualquer I/O.
	Search(ctx context.Context, query dynamic.Query, page, size int) (*Page[*entities.User], error)
}

// UserFilters contém filtros fixos para listagem simples de usuários
type UserFilters struct {
	Role     *entities.Role
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (default: 20, max: 100)
}

package services_test

import (
	"context"
	"sort"
	"sync"

	"github.com/rafabene/querypro-backend/internal/domain/dynamic"
	"github.com/rafabene/querypro-backend/internal/domain/entities"
	"github.com/rafabene/querypro-backend/internal/domain/repositories"
)

// userRow é a projeção plana de um usuário usada pela avaliação em memória
// das consultas dinâmicas no repositório fake.
type userRow struct {
	ID    string
	Name  string
	Email string
	Role  string
}

var fakeSchema = dynamic.Schema{
	"name":  {Column: "name", Attr: "Name", Kind: dynamic.KindString},
	"email": {Column: "email", Attr: "Email", Kind: dynamic.KindString},
	"role":  {Column: "role", Attr: "Role", Kind: dynamic.KindString},
}

// fakeUserRepository guarda usuários em memória e responde às consultas
// dinâmicas compilando e aplicando o predicado sobre a projeção userRow.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok || user.IsDeleted() {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email.String() == email && !user.IsDeleted() {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.SoftDelete()
	}
	return nil
}

func (f *fakeUserRepository) List(_ context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.User
	for _, user := range f.users {
		if user.IsDeleted() {
			continue
		}
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepository) Search(_ context.Context, query dynamic.Query, page, size int) (*repositories.Page[*entities.User], error) {
	compiled, err := dynamic.Compile(query, fakeSchema)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	var rows []userRow
	byID := make(map[string]*entities.User)
	for _, user := range f.users {
		if user.IsDeleted() {
			continue
		}
		rows = append(rows, userRow{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email.String(),
			Role:  string(user.Role),
		})
		byID[user.ID] = user
	}
	f.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	matched, err := dynamic.Apply(compiled, rows)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = 20
	}
	start := page * size
	end := start + size
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]*entities.User, 0, end-start)
	for _, row := range matched[start:end] {
		copied := *byID[row.ID]
		items = append(items, &copied)
	}

	result := repositories.NewPage(items, page, size, int64(len(matched)))
	return &result, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/model"
	"github.com/mulan-edu/mulan/internal/repository"
)

// mockUserRepo is an in-memory UserRepository for service tests.
type mockUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.Conflict("user", user.Username)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastSeen = now
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperror.NotFound("user", id)
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.ID]
	if !ok {
		return apperror.NotFound("user", user.ID)
	}
	for id, u := range m.users {
		if id != user.ID && u.Username == user.Username {
			return apperror.Conflict("user", user.Username)
		}
	}
	stored.Username = user.Username
	stored.AboutMe = user.AboutMe
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockUserRepo) TouchLastSeen(_ context.Context, id string, seen time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastSeen = seen
	}
	return nil
}

// mockEnterpriseRepo is an in-memory EnterpriseRepository. Insertion
// order stands in for creation time: List returns newest first.
type mockEnterpriseRepo struct {
	enterprises []*model.Enterprise
	values      map[model.GUID][]string
}

func newMockEnterpriseRepo() *mockEnterpriseRepo {
	return &mockEnterpriseRepo{values: make(map[model.GUID][]string)}
}

var _ repository.EnterpriseRepository = (*mockEnterpriseRepo)(nil)

func (m *mockEnterpriseRepo) CreateEnterprise(_ context.Context, e *model.Enterprise) error {
	for _, stored := range m.enterprises {
		if stored.Name == e.Name || stored.Symbol == e.Symbol {
			return apperror.Conflict("enterprise", e.Name)
		}
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	clone := *e
	m.enterprises = append(m.enterprises, &clone)
	return nil
}

func (m *mockEnterpriseRepo) GetEnterpriseByName(_ context.Context, name string) (*model.Enterprise, error) {
	for _, e := range m.enterprises {
		if e.Name == name {
			clone := *e
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("enterprise", name)
}

func (m *mockEnterpriseRepo) GetEnterpriseBySymbol(_ context.Context, symbol string) (*model.Enterprise, error) {
	for _, e := range m.enterprises {
		if e.Symbol == symbol {
			clone := *e
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("enterprise", symbol)
}

func (m *mockEnterpriseRepo) ListEnterprises(_ context.Context, opts repository.ListOptions) ([]model.Enterprise, error) {
	out := []model.Enterprise{}
	for i := len(m.enterprises) - 1; i >= 0; i-- {
		out = append(out, *m.enterprises[i])
	}
	if opts.Offset >= len(out) {
		return []model.Enterprise{}, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *mockEnterpriseRepo) CountEnterprises(_ context.Context) (int64, error) {
	return int64(len(m.enterprises)), nil
}

func (m *mockEnterpriseRepo) UpdateEnterprise(_ context.Context, e *model.Enterprise) error {
	for _, stored := range m.enterprises {
		if stored.ID == e.ID {
			stored.Name = e.Name
			stored.Description = e.Description
			stored.Symbol = e.Symbol
			stored.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return apperror.NotFound("enterprise", e.ID.String())
}

func (m *mockEnterpriseRepo) DeleteEnterpriseByName(_ context.Context, name string) error {
	for i, e := range m.enterprises {
		if e.Name == name {
			delete(m.values, e.ID)
			m.enterprises = append(m.enterprises[:i], m.enterprises[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("enterprise", name)
}

func (m *mockEnterpriseRepo) ReplaceValues(_ context.Context, enterpriseID model.GUID, names []string) error {
	m.values[enterpriseID] = append([]string(nil), names...)
	return nil
}

func (m *mockEnterpriseRepo) ValuesFor(_ context.Context, enterpriseID model.GUID) ([]model.Value, error) {
	var out []model.Value
	for i, name := range m.values[enterpriseID] {
		out = append(out, model.Value{ID: int64(i + 1), Name: name})
	}
	return out, nil
}

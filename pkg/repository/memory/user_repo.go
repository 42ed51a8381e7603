package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/WalkerBel92/evaluation/pkg/user"
)

// UserRepository is an in-memory user.Repository for tests and local runs.
// It mirrors the postgres store's behavior, including the unique-email
// guard applied inside Save.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
	order []uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]user.User)}
}

func (r *UserRepository) Save(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	if _, ok := r.users[u.ID]; !ok {
		r.order = append(r.order, u.ID)
	}
	r.users[u.ID] = clone(u)
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u, ok := r.users[id]; ok && u.Email == email {
			return clone(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) ListAll(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.users))
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			users = append(users, clone(u))
		}
	}
	return users, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// clone detaches the phones slice so callers cannot mutate stored state.
func clone(u user.User) user.User {
	if u.Phones != nil {
		phones := make([]user.Phone, len(u.Phones))
		copy(phones, u.Phones)
		u.Phones = phones
	}
	return u
}

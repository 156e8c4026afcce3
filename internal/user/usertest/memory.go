// Package usertest provides an in-memory user.Repository for tests.
package usertest

import (
	"context"
	"sync"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/password"
	"github.com/haifazahra-ui/pi-sosmed/internal/user"
)

type Repository struct {
	mu     sync.Mutex
	hasher password.Hasher
	users  map[int]user.User
	nextID int

	// Err, when set, is returned by every call.
	Err error
}

var _ user.Repository = (*Repository)(nil)

func NewRepository(hasher password.Hasher) *Repository {
	return &Repository{
		hasher: hasher,
		users:  make(map[int]user.User),
		nextID: 1,
	}
}

func (r *Repository) Create(ctx context.Context, u *user.User) error {
	if r.Err != nil {
		return r.Err
	}
	if err := u.PrepareForPersist(r.hasher); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.nextID++
	r.users[u.ID] = *u
	return nil
}

func (r *Repository) Update(ctx context.Context, u *user.User) error {
	if r.Err != nil {
		return r.Err
	}
	if err := u.PrepareForPersist(r.hasher); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*user.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id := 1; id < r.nextID; id++ {
		if u, ok := r.users[id]; ok && u.Username == username {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

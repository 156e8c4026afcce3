package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"
	"github.com/haifazahra-ui/pi-sosmed/internal/password"

	"github.com/uptrace/bun"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

type repository struct {
	db      *bun.DB
	hasher  password.Hasher
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, hasher password.Hasher, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		hasher:  hasher,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	if err := u.PrepareForPersist(r.hasher); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	start := time.Now()
	_, err := r.db.NewInsert().Model(u).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "users", time.Since(start), err)

	return err
}

// Update writes username and password. The stored hash is only replaced
// when the password was changed with SetPassword.
func (r *repository) Update(ctx context.Context, u *User) error {
	if err := u.PrepareForPersist(r.hasher); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u.UpdatedAt = time.Now()

	start := time.Now()
	result, err := r.db.NewUpdate().
		Model(u).
		Column("username", "password", "updated_at").
		WherePK().
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "users", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	start := time.Now()
	u := new(User)
	err := r.db.NewSelect().Model(u).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "users", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	start := time.Now()
	u := new(User)
	err := r.db.NewSelect().
		Model(u).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "users", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

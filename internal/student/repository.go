package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Student, error)
	Create(ctx context.Context, student *Student) (*Student, error)
	FindByID(ctx context.Context, id int) (*Student, error)
	UpdateByID(ctx context.Context, id int, patch Patch) (int64, error)
	DeleteByID(ctx context.Context, id int) (int64, error)
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) FindAll(ctx context.Context) ([]Student, error) {
	start := time.Now()
	students := make([]Student, 0)
	err := r.db.NewSelect().Model(&students).Order("id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "students", time.Since(start), err)

	return students, err
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	student.ID = 0

	start := time.Now()
	_, err := r.db.NewInsert().Model(student).ExcludeColumn("id", "created_at", "updated_at").Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "students", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return student, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Student, error) {
	start := time.Now()
	student := new(Student)
	err := r.db.NewSelect().Model(student).Where("id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "students", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// UpdateByID writes the non-nil fields of patch and returns the number of
// matched rows. updated_at is always bumped.
func (r *repository) UpdateByID(ctx context.Context, id int, patch Patch) (int64, error) {
	q := r.db.NewUpdate().
		Model((*Student)(nil)).
		Set("updated_at = current_timestamp").
		Where("id = ?", id)

	if patch.FirstName != nil {
		q = q.Set("first_name = ?", *patch.FirstName)
	}
	if patch.LastName != nil {
		q = q.Set("last_name = ?", *patch.LastName)
	}
	if patch.Classes != nil {
		q = q.Set("classes = ?", *patch.Classes)
	}
	if patch.MajorID != nil {
		q = q.Set("major_id = ?", *patch.MajorID)
	}
	if patch.Gender != nil {
		q = q.Set("gender = ?", *patch.Gender)
	}

	start := time.Now()
	result, err := q.Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "students", time.Since(start), err)

	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) DeleteByID(ctx context.Context, id int) (int64, error) {
	start := time.Now()
	result, err := r.db.NewDelete().
		Model((*Student)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "students", time.Since(start), err)

	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Package studenttest provides an in-memory student.Repository.
package studenttest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/student"
)

type Repository struct {
	mu       sync.Mutex
	students map[int]student.Student
	nextID   int

	// Err, when set, is returned by every call.
	Err error
}

var _ student.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{
		students: make(map[int]student.Student),
		nextID:   1,
	}
}

// Len reports how many rows are stored.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.students)
}

func (r *Repository) FindAll(ctx context.Context) ([]student.Student, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	students := make([]student.Student, 0, len(r.students))
	for _, s := range r.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (r *Repository) Create(ctx context.Context, s *student.Student) (*student.Student, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	s.ID = r.nextID
	s.CreatedAt = now
	s.UpdatedAt = now
	r.nextID++
	r.students[s.ID] = *s
	return s, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*student.Student, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.students[id]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	return &s, nil
}

func (r *Repository) UpdateByID(ctx context.Context, id int, patch student.Patch) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.students[id]
	if !ok {
		return 0, nil
	}
	if patch.FirstName != nil {
		s.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		s.LastName = *patch.LastName
	}
	if patch.Classes != nil {
		s.Classes = *patch.Classes
	}
	if patch.MajorID != nil {
		majorID := *patch.MajorID
		s.MajorID = &majorID
	}
	if patch.Gender != nil {
		s.Gender = *patch.Gender
	}
	s.UpdatedAt = time.Now().UTC()
	r.students[id] = s
	return 1, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id int) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return 0, nil
	}
	delete(r.students, id)
	return 1, nil
}

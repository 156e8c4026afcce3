package student

import (
	"context"
	"errors"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	GetAllStudents(ctx context.Context) ([]Student, error)
	CreateStudent(ctx context.Context, student *Student) (*Student, error)
	GetStudentByID(ctx context.Context, id int) (*Student, error)
	UpdateStudent(ctx context.Context, id int, patch Patch) (*Student, error)
	DeleteStudent(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetAllStudents(ctx context.Context) ([]Student, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) CreateStudent(ctx context.Context, student *Student) (*Student, error) {
	return s.repo.Create(ctx, student)
}

func (s *service) GetStudentByID(ctx context.Context, id int) (*Student, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStudent applies patch and returns the stored row. No row is created
// when id does not exist.
func (s *service) UpdateStudent(ctx context.Context, id int, patch Patch) (*Student, error) {
	updated, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		return nil, ErrStudentNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) DeleteStudent(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrStudentNotFound
	}
	return nil
}

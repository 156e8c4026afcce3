package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/haifazahra-ui/pi-sosmed/internal/password"
	"github.com/haifazahra-ui/pi-sosmed/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrMissingCredentials = errors.New("username and password are required")
)

type Service struct {
	users  user.Repository
	hasher password.Hasher
	signer *TokenSigner
}

func NewService(users user.Repository, hasher password.Hasher, signer *TokenSigner) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
	}
}

// Register creates a new user. The existence check and the insert are not
// atomic: two concurrent registrations of the same name can both succeed.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	u := user.New(req.Username, req.Password)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", ErrMissingCredentials
	}

	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := u.VerifyPassword(s.hasher, req.Password)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.signer.Sign(u.ID, u.Username)
}

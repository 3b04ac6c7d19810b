package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"anitrack/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

type ServiceInterface interface {
	Register(ctx context.Context, email, password string, name *string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
}

type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

const dummyPassword = "anitrack-no-such-user"

type Service struct {
	Repo          Repository
	Hasher        Hasher
	DefaultAvatar string

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository, hasher Hasher, defaultAvatar string) *Service {
	return &Service{Repo: repo, Hasher: hasher, DefaultAvatar: defaultAvatar}
}

func (s *Service) Register(ctx context.Context, email, pass string, name *string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || pass == "" {
		return nil, &ValidationError{Msg: "email and password required"}
	}

	_, err := s.Repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	hashed, err := s.Hasher.Hash(pass)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, &ValidationError{Msg: "password too long"}
		}
		return nil, err
	}

	user := &User{
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
	}
	if s.DefaultAvatar != "" {
		avatar := s.DefaultAvatar
		user.Avatar = &avatar
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("register create: %w", err)
	}
	return user, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike. Unknown emails still pay for one bcrypt comparison.
func (s *Service) Login(ctx context.Context, email, pass string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || pass == "" {
		return nil, &ValidationError{Msg: "email and password required"}
	}

	user, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.Hasher.Verify(pass, s.dummy())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !s.Hasher.Verify(pass, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// dummy is the hash compared against for unknown emails. If the configured
// hasher fails it falls back to bcrypt at the default cost, so the comparison
// is never skipped.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		hashed, err := s.Hasher.Hash(dummyPassword)
		if err == nil && hashed != "" {
			s.dummyHash = hashed
			return
		}
		fallback, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), password.DefaultCost)
		if err != nil {
			panic(fmt.Sprintf("dummy password hash: %v", err))
		}
		s.dummyHash = string(fallback)
	})
	return s.dummyHash
}

package credential

import (
	"context"
	"errors"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/go-auth-api/internal/pkg/password"
)

var (
	errEmailTaken         = domain.NewError(domain.ErrConflict, "Email Already Registered")
	errPhoneTaken         = domain.NewError(domain.ErrConflict, "Phone Number Already Registered")
	errInvalidCredentials = domain.NewError(domain.ErrUnauthorized, "Invalid Credentials")
)

// NewUser is the data collected by the registration flow.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Service owns uniqueness checks, verified-user creation and password checks.
type Service interface {
	AssertEmailUnique(ctx context.Context, email string) error
	AssertPhoneUnique(ctx context.Context, phone string) error
	Create(ctx context.Context, in NewUser) (*domain.User, error)
	ValidatePassword(ctx context.Context, email, plain string) (*domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type passwordHasher interface {
	Hash(v string) (string, error)
}

type service struct {
	users  userStore
	hasher passwordHasher
}

func NewService(users userStore, hasher passwordHasher) Service {
	return &service{users: users, hasher: hasher}
}

func (s *service) AssertEmailUnique(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	return conflictIfFound(u, err, errEmailTaken)
}

func (s *service) AssertPhoneUnique(ctx context.Context, phone string) error {
	u, err := s.users.GetByPhone(ctx, phone)
	return conflictIfFound(u, err, errPhoneTaken)
}

func conflictIfFound(u *domain.User, err error, conflict error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u != nil {
		return conflict
	}
	return nil
}

// Create stores a verified user. Concurrent registrations of the same email
// or phone are resolved by the unique constraints and surface as ErrConflict.
func (s *service) Create(ctx context.Context, in NewUser) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Phone != "" {
		phone := in.Phone
		u.Phone = &phone
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *service) ValidatePassword(ctx context.Context, email, plain string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, errInvalidCredentials
	}
	ok, err := password.Compare(u.PasswordHash, plain)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

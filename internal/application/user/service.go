package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
)

var (
	errDuplicate     = domain.NewError(domain.ErrConflict, "User with this email or phone already exists!")
	errNotFound      = domain.NewError(domain.ErrBadRequest, "User not found!")
	errNotSoftDelete = domain.NewError(domain.ErrBadRequest, "User must be deleted before destroyed!")
	errNotDeleted    = domain.NewError(domain.ErrBadRequest, "User is not deleted!")
)

// Picture is an uploaded profile picture.
type Picture struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type Service interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context, q domain.PageQuery) ([]*domain.User, domain.PageMeta, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	Destroy(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) (*domain.User, error)
	UploadPicture(ctx context.Context, userID string, pic Picture) (*domain.User, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string, withDeleted bool) (*domain.User, error)
	List(ctx context.Context, q domain.PageQuery) ([]*domain.User, int, error)
	Update(ctx context.Context, u *domain.User) error
	SoftDelete(ctx context.Context, userID string, at time.Time) error
	Restore(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

type sessionStore interface {
	Destroy(ctx context.Context, userID string) error
}

type passwordHasher interface {
	Hash(v string) (string, error)
}

type pictureStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

type service struct {
	repo     userStore
	sessions sessionStore
	hasher   passwordHasher
	pictures pictureStore
}

func NewService(repo userStore, sessions sessionStore, hasher passwordHasher, pictures pictureStore) Service {
	return &service{repo: repo, sessions: sessions, hasher: hasher, pictures: pictures}
}

// Create adds an already verified user, bypassing the OTP flow.
func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Phone != "" {
		phone := req.Phone
		u.Phone = &phone
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, mapConflict(err)
	}
	return u, nil
}

func (s *service) List(ctx context.Context, q domain.PageQuery) ([]*domain.User, domain.PageMeta, error) {
	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}
	return users, domain.NewPageMeta(total, q), nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.load(ctx, userID, false)
}

// Update applies the non-nil fields of req. Passwords go through the hasher,
// which leaves values that are already hashed untouched. An email change ends
// the login session, which holds the old address.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	u, err := s.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	emailChanged := req.Email != nil && *req.Email != u.Email
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, mapConflict(err)
	}
	if emailChanged {
		if err := s.sessions.Destroy(ctx, userID); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Delete soft-deletes the user and ends their login session.
func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := s.load(ctx, userID, false); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, userID, time.Now().UTC()); err != nil {
		return err
	}
	return s.sessions.Destroy(ctx, userID)
}

func (s *service) Destroy(ctx context.Context, userID string) error {
	u, err := s.load(ctx, userID, true)
	if err != nil {
		return err
	}
	if u.DeletedAt == nil {
		return errNotSoftDelete
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.removePicture(ctx, u.Picture)
	return nil
}

func (s *service) Restore(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.load(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if u.DeletedAt == nil {
		return nil, errNotDeleted
	}
	if err := s.repo.Restore(ctx, userID); err != nil {
		return nil, err
	}
	u.DeletedAt = nil
	return u, nil
}

func (s *service) UploadPicture(ctx context.Context, userID string, pic Picture) (*domain.User, error) {
	u, err := s.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("users/%s/%s%s", userID, id.New(), strings.ToLower(path.Ext(pic.Filename)))
	url, err := s.pictures.Upload(ctx, key, pic.Body, pic.ContentType)
	if err != nil {
		return nil, err
	}
	previous := u.Picture
	u.Picture = &url
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		s.removePicture(ctx, &url)
		return nil, err
	}
	s.removePicture(ctx, previous)
	return u, nil
}

func (s *service) load(ctx context.Context, userID string, withDeleted bool) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID, withDeleted)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// removePicture deletes a stored picture; failures only leave an orphan object.
func (s *service) removePicture(ctx context.Context, url *string) {
	if url == nil {
		return
	}
	key := s.pictures.KeyFromURL(*url)
	if key == "" {
		return
	}
	if err := s.pictures.Delete(ctx, key); err != nil {
		slog.Warn("could not delete picture", "key", key, "err", err)
	}
}

func mapConflict(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return errDuplicate
	}
	return err
}

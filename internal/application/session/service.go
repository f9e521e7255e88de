package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/application/cache"
	"github.com/go-auth-api/internal/domain"
)

var errNotFound = domain.NewError(domain.ErrUnauthorized, "Session Not Found")

// Service manages the one server-side login session each user may hold.
// Destroying it revokes every access token issued for the user.
type Service interface {
	Create(ctx context.Context, user domain.CurrentUser) error
	Get(ctx context.Context, userID string) (*domain.CurrentUser, error)
	Destroy(ctx context.Context, userID string) error
	ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error)
}

type service struct {
	store cache.Store
	ttl   time.Duration
}

func NewService(store cache.Store, ttl time.Duration) Service {
	return &service{store: store, ttl: ttl}
}

// Create stores the session, replacing any existing one and resetting its TTL.
func (s *service) Create(ctx context.Context, user domain.CurrentUser) error {
	if err := s.store.Set(ctx, cache.SessionKey(user.ID), user, s.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns nil without error when the user has no session.
func (s *service) Get(ctx context.Context, userID string) (*domain.CurrentUser, error) {
	var user domain.CurrentUser
	found, err := s.store.Get(ctx, cache.SessionKey(userID), &user)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (s *service) Destroy(ctx context.Context, userID string) error {
	if err := s.store.Del(ctx, cache.SessionKey(userID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *service) ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errNotFound
	}
	return user, nil
}

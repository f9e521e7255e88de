package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/go-auth-api/internal/application/cache"
	"github.com/go-auth-api/internal/domain"
)

const (
	minCode = 1000
	maxCode = 9999
)

var errInvalidCode = domain.NewError(domain.ErrUnauthorized, "Invalid OTP Code")

// Service issues and verifies single-use numeric codes bound to an email.
type Service interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
}

type service struct {
	store cache.Store
	ttl   time.Duration
}

func NewService(store cache.Store, ttl time.Duration) Service {
	return &service{store: store, ttl: ttl}
}

// Issue stores a fresh 4-digit code for email, replacing any pending one.
func (s *service) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, cache.OTPKey(email), code, s.ttl); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify consumes the pending code on a match. A wrong code leaves it in place.
func (s *service) Verify(ctx context.Context, email, code string) error {
	key := cache.OTPKey(email)
	var stored string
	found, err := s.store.Get(ctx, key, &stored)
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if !found || subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return errInvalidCode
	}
	if err := s.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+minCode), nil
}

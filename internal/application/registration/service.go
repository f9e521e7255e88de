package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/application/cache"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

const scope = "registration"

var (
	errInvalidToken = domain.NewError(domain.ErrUnauthorized, "Invalid Registration Token")
	errNoSession    = domain.NewError(domain.ErrUnauthorized, "Invalid or Expired Registration Token")
)

// Claims is the payload of a registration token.
type Claims struct {
	Email string `json:"email"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type signer interface {
	Sign(claims jwt.Claims) (string, error)
	Verify(token string, claims jwt.Claims) error
}

// Service issues and consumes single-use registration tokens. A token is
// only honored while its server-side session exists.
type Service interface {
	Issue(ctx context.Context, email string) (string, error)
	Consume(ctx context.Context, token string) (string, error)
}

type service struct {
	store      cache.Store
	signer     signer
	sessionTTL time.Duration
	tokenTTL   time.Duration
}

func NewService(store cache.Store, signer signer, sessionTTL, tokenTTL time.Duration) Service {
	return &service{store: store, signer: signer, sessionTTL: sessionTTL, tokenTTL: tokenTTL}
}

func (s *service) Issue(ctx context.Context, email string) (string, error) {
	jti := id.NewUUID()
	if err := s.store.Set(ctx, cache.RegistrationKey(jti), email, s.sessionTTL); err != nil {
		return "", fmt.Errorf("store registration session: %w", err)
	}
	now := time.Now()
	token, err := s.signer.Sign(Claims{
		Email: email,
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("sign registration token: %w", err)
	}
	return token, nil
}

// Consume returns the email bound to token and deletes its session.
func (s *service) Consume(ctx context.Context, token string) (string, error) {
	var claims Claims
	if err := s.signer.Verify(token, &claims); err != nil {
		return "", errInvalidToken
	}
	if claims.Scope != scope || claims.ID == "" {
		return "", errInvalidToken
	}

	key := cache.RegistrationKey(claims.ID)
	var email string
	found, err := s.store.Get(ctx, key, &email)
	if err != nil {
		return "", fmt.Errorf("load registration session: %w", err)
	}
	if !found || email != claims.Email {
		return "", errNoSession
	}
	if err := s.store.Del(ctx, key); err != nil {
		return "", fmt.Errorf("delete registration session: %w", err)
	}
	return email, nil
}

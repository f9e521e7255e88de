package accesstoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned by Parse when the input is not a JWT at all.
var ErrMalformed = domain.NewError(domain.ErrBadRequest, "Invalid Token")

var errInvalid = domain.NewError(domain.ErrUnauthorized, "Invalid Credentials")

// Claims is the access token payload. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type signer interface {
	Sign(claims jwt.Claims) (string, error)
	Verify(token string, claims jwt.Claims) error
}

// Service mints stateless bearer tokens. Revocation is handled by the
// login session, not by the token.
type Service interface {
	Create(user domain.CurrentUser) (string, error)
	Parse(token string) (domain.CurrentUser, error)
}

type service struct {
	signer signer
	ttl    time.Duration
}

func NewService(signer signer, ttl time.Duration) Service {
	return &service{signer: signer, ttl: ttl}
}

func (s *service) Create(user domain.CurrentUser) (string, error) {
	now := time.Now()
	token, err := s.signer.Sign(Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.New(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

func (s *service) Parse(token string) (domain.CurrentUser, error) {
	var claims Claims
	if err := s.signer.Verify(token, &claims); err != nil {
		if errors.Is(err, jwtinfra.ErrMalformedToken) {
			return domain.CurrentUser{}, ErrMalformed
		}
		return domain.CurrentUser{}, errInvalid
	}
	if claims.Subject == "" {
		return domain.CurrentUser{}, errInvalid
	}
	return domain.CurrentUser{ID: claims.Subject, Email: claims.Email}, nil
}

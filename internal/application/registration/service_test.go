package registration

import (
	"context"
	"testing"
	"time"

	"github.com/go-auth-api/internal/application/cache"
	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/infrastructure/memory"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *memory.Cache, *jwtinfra.Provider) {
	t.Helper()
	store := memory.NewCache(time.Minute)
	t.Cleanup(store.Close)
	p, err := jwtinfra.NewProvider("registration-secret")
	require.NoError(t, err)
	return NewService(store, p, 10*time.Minute, 10*time.Minute), store, p
}

func assertMessage(t *testing.T, err error, want string) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	msg, ok := domain.Message(err)
	require.True(t, ok)
	assert.Equal(t, want, msg)
}

func TestIssue_ClaimsAndSession(t *testing.T) {
	ctx := context.Background()
	svc, store, p := newTestService(t)

	token, err := svc.Issue(ctx, "a@b.com")
	require.NoError(t, err)

	var claims Claims
	require.NoError(t, p.Verify(token, &claims))
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "registration", claims.Scope)
	assert.NotEmpty(t, claims.ID)

	var email string
	found, err := store.Get(ctx, cache.RegistrationKey(claims.ID), &email)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a@b.com", email)
}

func TestConsume_SingleUse(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	token, err := svc.Issue(ctx, "a@b.com")
	require.NoError(t, err)

	email, err := svc.Consume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	_, err = svc.Consume(ctx, token)
	assertMessage(t, err, "Invalid or Expired Registration Token")
}

func TestConsume_WrongScope(t *testing.T) {
	ctx := context.Background()
	svc, store, p := newTestService(t)
	require.NoError(t, store.Set(ctx, cache.RegistrationKey("jti-1"), "a@b.com", time.Minute))
	token, err := p.Sign(Claims{
		Email: "a@b.com",
		Scope: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = svc.Consume(ctx, token)

	assertMessage(t, err, "Invalid Registration Token")
	var email string
	found, _ := store.Get(ctx, cache.RegistrationKey("jti-1"), &email)
	assert.True(t, found, "session must survive a rejected token")
}

func TestConsume_WrongSecret(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	other, err := jwtinfra.NewProvider("access-secret")
	require.NoError(t, err)
	token, err := other.Sign(Claims{
		Email: "a@b.com",
		Scope: "registration",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = svc.Consume(ctx, token)

	assertMessage(t, err, "Invalid Registration Token")
}

func TestConsume_Expired(t *testing.T) {
	ctx := context.Background()
	svc, store, p := newTestService(t)
	require.NoError(t, store.Set(ctx, cache.RegistrationKey("jti-1"), "a@b.com", time.Minute))
	token, err := p.Sign(Claims{
		Email: "a@b.com",
		Scope: "registration",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = svc.Consume(ctx, token)

	assertMessage(t, err, "Invalid Registration Token")
}

func TestConsume_EmailMismatch(t *testing.T) {
	ctx := context.Background()
	svc, store, p := newTestService(t)
	require.NoError(t, store.Set(ctx, cache.RegistrationKey("jti-1"), "other@b.com", time.Minute))
	token, err := p.Sign(Claims{
		Email: "a@b.com",
		Scope: "registration",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = svc.Consume(ctx, token)

	assertMessage(t, err, "Invalid or Expired Registration Token")
}

func TestConsume_Garbage(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Consume(context.Background(), "not-a-jwt")

	assertMessage(t, err, "Invalid Registration Token")
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Parse(token string) (domain.CurrentUser, error) {
	args := m.Called(token)
	return args.Get(0).(domain.CurrentUser), args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.CurrentUser); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func serve(t *testing.T, tokens *mockTokens, sessions *mockSessions, header string, next http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	Auth(tokens, sessions)(next).ServeHTTP(rr, req)
	return rr
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, rr.Code, body.StatusCode)
	return body.Message
}

func TestAuth_MissingHeader(t *testing.T) {
	rr := serve(t, &mockTokens{}, &mockSessions{}, "", okHandler)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid Credentials", decodeMessage(t, rr))
}

func TestAuth_MalformedToken(t *testing.T) {
	tokens := &mockTokens{}
	tokens.On("Parse", "garbage").Return(domain.CurrentUser{}, domain.NewError(domain.ErrBadRequest, "Invalid Token"))

	rr := serve(t, tokens, &mockSessions{}, "Bearer garbage", okHandler)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid Token", decodeMessage(t, rr))
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := &mockTokens{}
	tokens.On("Parse", "expired").Return(domain.CurrentUser{}, domain.NewError(domain.ErrUnauthorized, "Invalid Credentials"))

	rr := serve(t, tokens, &mockSessions{}, "Bearer expired", okHandler)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_NoSession(t *testing.T) {
	tokens := &mockTokens{}
	tokens.On("Parse", "tok").Return(domain.CurrentUser{ID: "u1", Email: "a@b.com"}, nil)
	sessions := &mockSessions{}
	sessions.On("ValidateSession", mock.Anything, "u1").Return(nil, domain.NewError(domain.ErrUnauthorized, "Session Not Found"))

	rr := serve(t, tokens, sessions, "Bearer tok", okHandler)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Session Not Found", decodeMessage(t, rr))
}

func TestAuth_SessionStoreError(t *testing.T) {
	tokens := &mockTokens{}
	tokens.On("Parse", "tok").Return(domain.CurrentUser{ID: "u1"}, nil)
	sessions := &mockSessions{}
	sessions.On("ValidateSession", mock.Anything, "u1").Return(nil, errors.New("redis down"))

	rr := serve(t, tokens, sessions, "Bearer tok", okHandler)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAuth_InjectsCurrentUser(t *testing.T) {
	tokens := &mockTokens{}
	tokens.On("Parse", "tok").Return(domain.CurrentUser{ID: "u1", Email: "a@b.com"}, nil)
	sessions := &mockSessions{}
	sessions.On("ValidateSession", mock.Anything, "u1").Return(&domain.CurrentUser{ID: "u1", Email: "a@b.com"}, nil)

	var got domain.CurrentUser
	var ok bool
	rr := serve(t, tokens, sessions, "Bearer tok", func(w http.ResponseWriter, r *http.Request) {
		got, ok = CurrentUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, ok)
	assert.Equal(t, domain.CurrentUser{ID: "u1", Email: "a@b.com"}, got)
}

func TestCurrentUserFromContext_Missing(t *testing.T) {
	_, ok := CurrentUserFromContext(context.Background())
	assert.False(t, ok)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) RequestRegistrationOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuth) VerifyRegistrationOTP(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) Register(ctx context.Context, in auth.RegisterInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) Authenticate(ctx context.Context, email, password string) (domain.CurrentUser, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.CurrentUser), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, u domain.CurrentUser) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, u domain.CurrentUser) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockAuth) ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentUser), args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) List(ctx context.Context, q domain.PageQuery) ([]*domain.User, domain.PageMeta, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.PageMeta{}, args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Get(1).(domain.PageMeta), args.Error(2)
}

func (m *mockUsers) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUsers) Destroy(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUsers) Restore(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) UploadPicture(ctx context.Context, userID string, pic user.Picture) (*domain.User, error) {
	args := m.Called(ctx, userID, pic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) List(ctx context.Context, q domain.PageQuery) ([]*domain.Category, domain.PageMeta, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.PageMeta{}, args.Error(2)
	}
	return args.Get(0).([]*domain.Category), args.Get(1).(domain.PageMeta), args.Error(2)
}

func (m *mockCategories) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategories) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategories) Update(ctx context.Context, categoryID string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategories) Restore(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategories) Delete(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

func (m *mockCategories) Destroy(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

// newRequest builds a request with an optional JSON body and chi URL params.
func newRequest(t *testing.T, method, target string, body any, params map[string]string) *http.Request {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	return withParams(httptest.NewRequest(method, target, r), params)
}

func withParams(req *http.Request, params map[string]string) *http.Request {
	if len(params) == 0 {
		return req
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-auth-api/internal/application/accesstoken"
	"github.com/go-auth-api/internal/application/credential"
	"github.com/go-auth-api/internal/application/otp"
	"github.com/go-auth-api/internal/application/registration"
	"github.com/go-auth-api/internal/application/session"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/observability"
)

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

type RegisterInput struct {
	RegistrationToken string `json:"registrationToken" validate:"required,jwt"`
	Name              string `json:"name" validate:"required,max=100"`
	Password          string `json:"password" validate:"required,password"`
	Phone             string `json:"phone" validate:"required,numericstr,max=15"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Deliverer sends an OTP code to its owner out of band.
type Deliverer interface {
	Deliver(ctx context.Context, email, code string) error
}

// LogDeliverer writes codes to the log. For local development only.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(_ context.Context, email, code string) error {
	slog.Info("otp issued", "email", email, "code", code)
	return nil
}

// Service drives registration and login. It holds no state of its own.
type Service interface {
	RequestRegistrationOTP(ctx context.Context, email string) error
	VerifyRegistrationOTP(ctx context.Context, email, code string) (string, error)
	Register(ctx context.Context, in RegisterInput) (string, error)
	Authenticate(ctx context.Context, email, password string) (domain.CurrentUser, error)
	Login(ctx context.Context, user domain.CurrentUser) (string, error)
	Logout(ctx context.Context, user domain.CurrentUser) error
	ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error)
}

type service struct {
	otp          otp.Service
	registration registration.Service
	accessTokens accesstoken.Service
	sessions     session.Service
	credentials  credential.Service
	deliverer    Deliverer
}

func NewService(
	otpSvc otp.Service,
	registrationSvc registration.Service,
	accessTokens accesstoken.Service,
	sessions session.Service,
	credentials credential.Service,
	deliverer Deliverer,
) Service {
	return &service{
		otp:          otpSvc,
		registration: registrationSvc,
		accessTokens: accessTokens,
		sessions:     sessions,
		credentials:  credentials,
		deliverer:    deliverer,
	}
}

// RequestRegistrationOTP rejects registered emails before any code is issued.
func (s *service) RequestRegistrationOTP(ctx context.Context, email string) (err error) {
	defer func() { observability.RecordAuthEvent(observability.EventOTPRequested, err) }()

	if err := s.credentials.AssertEmailUnique(ctx, email); err != nil {
		return err
	}
	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}
	if err := s.deliverer.Deliver(ctx, email, code); err != nil {
		return fmt.Errorf("deliver otp: %w", err)
	}
	return nil
}

func (s *service) VerifyRegistrationOTP(ctx context.Context, email, code string) (token string, err error) {
	defer func() { observability.RecordAuthEvent(observability.EventOTPVerified, err) }()

	if err := s.otp.Verify(ctx, email, code); err != nil {
		return "", err
	}
	return s.registration.Issue(ctx, email)
}

// Register creates the user bound to a registration token and logs them in.
// The user row is committed before the session; if the session write fails
// the account exists and the caller can log in normally.
func (s *service) Register(ctx context.Context, in RegisterInput) (token string, err error) {
	defer func() { observability.RecordAuthEvent(observability.EventRegistered, err) }()

	email, err := s.registration.Consume(ctx, in.RegistrationToken)
	if err != nil {
		return "", err
	}
	if err := s.credentials.AssertPhoneUnique(ctx, in.Phone); err != nil {
		return "", err
	}
	u, err := s.credentials.Create(ctx, credential.NewUser{
		Name:     in.Name,
		Email:    email,
		Password: in.Password,
		Phone:    in.Phone,
	})
	if err != nil {
		return "", err
	}
	slog.Info("user registered", "user_id", u.UserID)
	return s.startSession(ctx, u.Identity())
}

func (s *service) Authenticate(ctx context.Context, email, password string) (domain.CurrentUser, error) {
	u, err := s.credentials.ValidatePassword(ctx, email, password)
	if err != nil {
		observability.RecordAuthEvent(observability.EventLogin, err)
		return domain.CurrentUser{}, err
	}
	return u.Identity(), nil
}

// Login replaces any existing session for user and returns a new access token.
func (s *service) Login(ctx context.Context, user domain.CurrentUser) (token string, err error) {
	defer func() { observability.RecordAuthEvent(observability.EventLogin, err) }()
	return s.startSession(ctx, user)
}

func (s *service) Logout(ctx context.Context, user domain.CurrentUser) (err error) {
	defer func() { observability.RecordAuthEvent(observability.EventLogout, err) }()
	return s.sessions.Destroy(ctx, user.ID)
}

func (s *service) ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error) {
	u, err := s.sessions.ValidateSession(ctx, userID)
	if err != nil {
		observability.RecordAuthEvent(observability.EventSessionDenied, err)
		return nil, err
	}
	return u, nil
}

func (s *service) startSession(ctx context.Context, user domain.CurrentUser) (string, error) {
	if err := s.sessions.Create(ctx, user); err != nil {
		return "", err
	}
	return s.accessTokens.Create(user)
}

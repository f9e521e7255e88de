// Package cache defines the expiring key/value contract shared by the
// short-lived auth records (OTP codes, registration sessions, login sessions).
package cache

import (
	"context"
	"time"
)

// Store is implemented by every cache backend. Values are JSON-encoded.
// Get reports found=false for absent or expired keys. Del is idempotent.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) (bool, error)
	Del(ctx context.Context, key string) error
}

const (
	otpPrefix          = "Auth:Otp:"
	registrationPrefix = "Auth:Registration:"
	sessionPrefix      = "Auth:Session:"
)

// OTPKey is the key holding the pending OTP code for an email.
func OTPKey(email string) string { return otpPrefix + email }

// RegistrationKey is the key holding the registration session for a token id.
func RegistrationKey(jti string) string { return registrationPrefix + jti }

// SessionKey is the key holding the login session of a user.
func SessionKey(userID string) string { return sessionPrefix + userID }

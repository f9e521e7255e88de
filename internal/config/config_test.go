package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/auth")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("JWT_EXPIRES_IN", "3600")
	t.Setenv("OTP_EXPIRES_IN", "300")
	t.Setenv("REGISTRATION_SESSION_EXPIRES_IN", "600")
	t.Setenv("REGISTRATION_TOKEN_SECRET", "reg-secret")
	t.Setenv("REGISTRATION_TOKEN_EXPIRES_IN", "10m")
	t.Setenv("SESSION_EXPIRES_IN", "86400")
}

func TestLoad_AllRequiredPresent(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.JWTExpiresIn)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.Auth.RegistrationSessionExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.Auth.RegistrationTokenExpiresIn)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionExpiresIn)
	assert.Equal(t, "reg-secret", cfg.Auth.RegistrationTokenSecret)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "redis", cfg.CacheDriver)
	assert.Equal(t, "log", cfg.OTPDelivery)
	assert.False(t, cfg.TrustedProxy)
}

func TestLoad_TrustedProxy(t *testing.T) {
	setRequired(t)
	t.Setenv("TRUSTED_PROXY", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.TrustedProxy)
}

func TestLoad_MissingRequiredIsFatal(t *testing.T) {
	setRequired(t)
	t.Setenv("OTP_EXPIRES_IN", "")
	t.Setenv("REGISTRATION_TOKEN_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTP_EXPIRES_IN is not set")
	assert.Contains(t, err.Error(), "REGISTRATION_TOKEN_SECRET is not set")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_EXPIRES_IN", "forever")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_EXPIRES_IN")
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"60", time.Minute, false},
		{"1h", time.Hour, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"500ms", 0, true},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		if c.wantErr {
			assert.Error(t, err, "input: %q", c.in)
			continue
		}
		require.NoError(t, err, "input: %q", c.in)
		assert.Equal(t, c.want, got, "input: %q", c.in)
	}
}

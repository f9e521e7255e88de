package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-auth-api/internal/domain"
)

type contextKey string

const CurrentUserKey contextKey = "currentUser"

type tokenParser interface {
	Parse(token string) (domain.CurrentUser, error)
}

type sessionValidator interface {
	ValidateSession(ctx context.Context, userID string) (*domain.CurrentUser, error)
}

// Auth returns middleware that verifies the Bearer access token, requires a
// live login session for its subject and stores the session's user in context.
func Auth(tokens tokenParser, sessions sessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "Invalid Credentials")
				return
			}
			claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			user, err := sessions.ValidateSession(r.Context(), claims.ID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), CurrentUserKey, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
	default:
		slog.Error("auth check failed", "err", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	msg, ok := domain.Message(err)
	if !ok {
		msg = http.StatusText(status)
	}
	writeJSONError(w, status, msg)
}

// CurrentUserFromContext returns the user stored by Auth.
func CurrentUserFromContext(ctx context.Context) (domain.CurrentUser, bool) {
	u, ok := ctx.Value(CurrentUserKey).(domain.CurrentUser)
	return u, ok
}

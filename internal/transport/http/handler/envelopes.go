package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/validate"
)

// APIResponse is the envelope of every response.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Meta       any    `json:"meta"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respond(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, APIResponse{StatusCode: status, Success: true, Message: msg, Data: data})
}

func respondPage(w http.ResponseWriter, msg string, data any, meta domain.PageMeta) {
	writeJSON(w, http.StatusOK, APIResponse{StatusCode: http.StatusOK, Success: true, Message: msg, Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{StatusCode: status, Success: false, Message: msg})
}

// httpError maps a service error to its status. Errors without a domain kind
// are logged and reported as a generic 500.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, status, "Internal Server Error")
		return
	}
	msg, ok := domain.Message(err)
	if !ok {
		msg = http.StatusText(status)
	}
	writeError(w, status, msg)
}

// decode reads a JSON body into dst and validates it, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// parsePageQuery reads page, size, keyword and hard (include deleted rows).
func parsePageQuery(r *http.Request) domain.PageQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(q.Get("size"))
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	hard, _ := strconv.ParseBool(q.Get("hard"))
	return domain.PageQuery{Page: page, Size: size, Keyword: q.Get("keyword"), WithDeleted: hard}
}

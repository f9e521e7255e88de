package handler

import (
	"net/http"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/transport/http/middleware"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

type registrationTokenResponse struct {
	RegistrationToken string `json:"registrationToken"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.RequestOTPRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.RequestRegistrationOTP(r.Context(), req.Email); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "OTP has been sent to your email", nil)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyOTPRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.svc.VerifyRegistrationOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "OTP Verification Successful!", registrationTokenResponse{RegistrationToken: token})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if !decode(w, r, &req) {
		return
	}
	token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Registration Successful!", accessTokenResponse{AccessToken: token})
}

// Login checks the credentials before a session is started.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing Credentials")
		return
	}
	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpError(w, r, err)
		return
	}
	token, err := h.svc.Login(r.Context(), user)
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Login Successful", accessTokenResponse{AccessToken: token})
}

func (h *AuthHandler) LoggedIn(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}
	respond(w, http.StatusOK, "Logged-In Successful", user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}
	if err := h.svc.Logout(r.Context(), user); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Logout Successful", nil)
}

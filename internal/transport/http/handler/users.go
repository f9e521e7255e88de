package handler

import (
	"net/http"

	"github.com/go-auth-api/internal/application/user"
	"github.com/go-auth-api/internal/domain"
	s3infra "github.com/go-auth-api/internal/infrastructure/s3"
	"github.com/go-chi/chi/v5"
)

const maxPictureSize = 5 << 20

// UserHandler handles user CRUD endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "User created successfully!", u)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, meta, err := h.svc.List(r.Context(), parsePageQuery(r))
	if err != nil {
		httpError(w, r, err)
		return
	}
	respondPage(w, "Users retrieved successfully!", users, meta)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User retrieved successfully!", u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateUserRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User updated successfully!", nil)
}

func (h *UserHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User restored successfully!", nil)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User deleted successfully!", nil)
}

func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Destroy(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User destroyed successfully!", nil)
}

// UploadPicture accepts a multipart form with the image in field "file".
func (h *UserHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPictureSize)
	if err := r.ParseMultipartForm(maxPictureSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := s3infra.DetectContentType(header.Filename)
	if contentType == "application/octet-stream" {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}
	u, err := h.svc.UploadPicture(r.Context(), chi.URLParam(r, "id"), user.Picture{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Picture uploaded successfully!", u)
}

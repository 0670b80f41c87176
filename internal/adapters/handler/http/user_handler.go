package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	links   Links
}

func NewUserHandler(service ports.UserService, links Links) *UserHandler {
	return &UserHandler{
		service: service,
		links:   links,
	}
}

type userResponse struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsStaff  *bool   `json:"is_staff"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	users, err := h.service.List(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, h.response(r, u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	user, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, user))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreateUserInput{
		Username: deref(req.Username),
		Email:    deref(req.Email),
		Password: deref(req.Password),
	}
	if req.IsStaff != nil {
		input.IsStaff = *req.IsStaff
	}

	user, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.response(r, user))
}

// Update serves both PUT and PATCH. PUT must carry the username.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if r.Method == http.MethodPut && req.Username == nil {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	user, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsStaff:  req.IsStaff,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) response(r *http.Request, u *domain.User) userResponse {
	return userResponse{
		URL:      h.links.URL(r, "/api/users/"+u.ID.String()+"/"),
		Username: u.Username,
		Email:    u.Email,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

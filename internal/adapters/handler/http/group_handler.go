package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type GroupHandler struct {
	service ports.GroupService
	links   Links
}

func NewGroupHandler(service ports.GroupService, links Links) *GroupHandler {
	return &GroupHandler{
		service: service,
		links:   links,
	}
}

type groupResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type groupRequest struct {
	Name string `json:"name"`
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, h.response(r, g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, group))
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.service.Create(r.Context(), actor, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.response(r, group))
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.service.Rename(r.Context(), actor, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, group))
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) response(r *http.Request, g *domain.Group) groupResponse {
	return groupResponse{
		URL:  h.links.URL(r, "/api/groups/"+g.ID.String()+"/"),
		Name: g.Name,
	}
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/httpx"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	store *portfolio.Store
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(store *portfolio.Store) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// ListProjects handles GET /api/projects?tag=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.ListByTag(r.URL.Query().Get("tag")))
}

// ListTags handles GET /api/projects/tags
func (h *ProjectHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.Tags())
}

// GetProject handles GET /api/projects/{slug}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.store.Find(chi.URLParam(r, "slug"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, project)
}

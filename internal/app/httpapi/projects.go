package httpapi

import (
	"net/http"

	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/httputil"
	"github.com/taskboard/tracker/internal/middleware"
	"github.com/taskboard/tracker/internal/validation"
)

func (h *handler) listProjects(w http.ResponseWriter, r *http.Request) {
	items, err := h.app.Projects.List(r.Context(), middleware.GetUserID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []project.Project{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"projects": items})
}

func (h *handler) createProject(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.DecodeJSON(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	values, err := validation.CreateProject.Validate(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.app.Projects.Create(r.Context(), middleware.GetUserID(r), values.String("name"), values.String("description"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"project": created})
}

func (h *handler) getProject(w http.ResponseWriter, r *http.Request) {
	values, err := validation.ProjectID.Validate(params(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	detail, err := h.app.Projects.Get(r.Context(), middleware.GetUserID(r), values.String("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *handler) updateProject(w http.ResponseWriter, r *http.Request) {
	in, err := h.input(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	values, err := validation.UpdateProject.Validate(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.app.Projects.Update(r.Context(), middleware.GetUserID(r), values.String("id"), project.Update{
		Name:        values.String("name"),
		Description: values.StringPtr("description"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"project": updated})
}

func (h *handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	values, err := validation.ProjectID.Validate(params(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.app.Projects.Delete(r.Context(), middleware.GetUserID(r), values.String("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ok)
}

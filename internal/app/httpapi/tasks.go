package httpapi

import (
	"net/http"

	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/httputil"
	"github.com/taskboard/tracker/internal/middleware"
	"github.com/taskboard/tracker/internal/validation"
)

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	in := map[string]any{}
	if q := r.URL.Query(); q.Has("projectId") {
		in["projectId"] = q.Get("projectId")
	}
	values, err := validation.ListTasks.Validate(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items, err := h.app.Tasks.List(r.Context(), middleware.GetUserID(r), values.String("projectId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []task.Task{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tasks": items})
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.DecodeJSON(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	values, err := validation.CreateTask.Validate(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.app.Tasks.Create(r.Context(), middleware.GetUserID(r), task.Task{
		ProjectID:   values.String("projectId"),
		Title:       values.String("title"),
		Description: values.String("description"),
		Priority:    task.Priority(values.String("priority")),
		Status:      task.Status(values.String("status")),
		DueDate:     values.TimePtr("dueDate"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"task": created})
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	in, err := h.input(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	values, err := validation.UpdateTask.Validate(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.app.Tasks.Update(r.Context(), middleware.GetUserID(r), values.String("id"), taskUpdate(values))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"task": updated})
}

// taskUpdate maps validated input onto an update. Omitted optional fields are
// left unchanged; a null or empty dueDate clears it.
func taskUpdate(values validation.Values) task.Update {
	upd := task.Update{
		Title:       values.String("title"),
		Description: values.StringPtr("description"),
	}
	if values.Has("priority") {
		p := task.Priority(values.String("priority"))
		upd.Priority = &p
	}
	if values.Has("status") {
		s := task.Status(values.String("status"))
		upd.Status = &s
	}
	switch {
	case values.IsNull("dueDate"):
		upd.DueDate = task.DueDateClear
	case values.Has("dueDate"):
		upd.DueDate = task.DueDateSet
		upd.DueDateAt, _ = values.Time("dueDate")
	}
	return upd
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	values, err := validation.TaskID.Validate(params(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.app.Tasks.Delete(r.Context(), middleware.GetUserID(r), values.String("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ok)
}

func (h *handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.app.Tasks.Dashboard(r.Context(), middleware.GetUserID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dashboard)
}

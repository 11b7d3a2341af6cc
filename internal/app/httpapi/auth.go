package httpapi

import (
	"net/http"

	"github.com/taskboard/tracker/internal/app/services/accounts"
	"github.com/taskboard/tracker/internal/httputil"
	"github.com/taskboard/tracker/internal/validation"
)

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.DecodeJSON(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	values, err := validation.Register.Validate(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.app.Accounts.Register(r.Context(), accounts.Registration{
		Name:     values.String("name"),
		Email:    values.String("email"),
		Password: values.String("password"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, session)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.DecodeJSON(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	values, err := validation.Login.Validate(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.app.Accounts.Login(r.Context(), values.String("email"), values.String("password"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

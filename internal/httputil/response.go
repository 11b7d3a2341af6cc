// Package httputil holds the JSON request and response helpers shared by the
// API handlers, middleware and client.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/logging"
)

// ErrorBody is the only error shape clients ever see.
type ErrorBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// MapError translates err into a status and client message. Unclassified
// errors become a generic 500 so internal detail never leaks.
func MapError(err error) (int, string) {
	se := errors.GetServiceError(err)
	if se == nil {
		return http.StatusInternalServerError, "Internal server error"
	}
	if se.Code == errors.CodeInternal {
		return http.StatusInternalServerError, "Internal server error"
	}
	status := se.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return status, se.Message
}

// ErrorWriter maps errors to responses and logs them.
type ErrorWriter struct {
	log     *logging.Logger
	verbose bool
}

// NewErrorWriter creates an ErrorWriter. When verbose is set, server-side
// failures are logged with their full cause.
func NewErrorWriter(log *logging.Logger, verbose bool) *ErrorWriter {
	if log == nil {
		log = logging.NewDefault("http")
	}
	return &ErrorWriter{log: log, verbose: verbose}
}

// Write sends the mapped error response for err.
func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	status, message := MapError(err)

	entry := e.log.WithContext(r.Context()).WithFields(map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	switch {
	case status >= http.StatusInternalServerError && e.verbose:
		entry.WithError(err).Error("request failed")
	case status >= http.StatusInternalServerError:
		entry.Error("request failed")
	default:
		entry.WithField("reason", message).Debug("request rejected")
	}

	WriteJSON(w, status, ErrorBody{Message: message})
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	app "github.com/taskboard/tracker/internal/app"
	"github.com/taskboard/tracker/internal/app/metrics"
	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/httputil"
	"github.com/taskboard/tracker/internal/logging"
	"github.com/taskboard/tracker/internal/middleware"
)

// Config controls how the API is mounted.
type Config struct {
	// APIPrefix is prepended to every API route, e.g. "/api".
	APIPrefix      string
	AllowedOrigins []string
	// Verbose logs the cause of 5xx responses.
	Verbose bool
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app    *app.Application
	errors *httputil.ErrorWriter
	log    *logging.Logger
}

// NewHandler returns the full HTTP surface: the API under cfg.APIPrefix,
// health checks, metrics and the JSON 404.
func NewHandler(application *app.Application, cfg Config, log *logging.Logger) http.Handler {
	if log == nil {
		log = logging.NewDefault("http")
	}
	h := &handler{
		app:    application,
		errors: httputil.NewErrorWriter(log, cfg.Verbose),
		log:    log,
	}

	root := mux.NewRouter()
	root.NotFoundHandler = http.HandlerFunc(h.notFound)
	root.MethodNotAllowedHandler = http.HandlerFunc(h.notFound)

	root.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	root.HandleFunc("/health", h.health).Methods(http.MethodGet)

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	api := root.PathPrefix(prefix).Subrouter()
	if prefix == "/" {
		api = root
	}
	api.HandleFunc("/health", h.health).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	authn := middleware.NewAuthMiddleware(application.Tokens, log, h.errors, nil)

	projects := api.PathPrefix("/projects").Subrouter()
	projects.Use(authn.Handler)
	projects.HandleFunc("", h.listProjects).Methods(http.MethodGet)
	projects.HandleFunc("", h.createProject).Methods(http.MethodPost)
	projects.HandleFunc("/{id}", h.getProject).Methods(http.MethodGet)
	projects.HandleFunc("/{id}", h.updateProject).Methods(http.MethodPut)
	projects.HandleFunc("/{id}", h.deleteProject).Methods(http.MethodDelete)

	tasks := api.PathPrefix("/tasks").Subrouter()
	tasks.Use(authn.Handler)
	tasks.HandleFunc("/stats/dashboard", h.dashboardStats).Methods(http.MethodGet)
	tasks.HandleFunc("", h.listTasks).Methods(http.MethodGet)
	tasks.HandleFunc("", h.createTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", h.updateTask).Methods(http.MethodPut)
	tasks.HandleFunc("/{id}", h.deleteTask).Methods(http.MethodDelete)

	var out http.Handler = root
	out = metrics.InstrumentHandler(out)
	out = middleware.SecurityHeaders(out)
	out = middleware.NewCORSMiddleware(cfg.AllowedOrigins).Handler(out)
	out = middleware.Recovery(h.errors)(out)
	out = middleware.NewTracingMiddleware(log).Handler(out)
	return out
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errors.Write(w, r, errors.NotFound("Not found"))
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.Write(w, r, err)
}

// input merges the JSON body with the path parameters. Path parameters win.
func (h *handler) input(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := httputil.DecodeJSON(w, r)
	if err != nil {
		return nil, err
	}
	for k, v := range mux.Vars(r) {
		body[k] = v
	}
	return body, nil
}

// params returns only the path parameters.
func params(r *http.Request) map[string]any {
	out := map[string]any{}
	for k, v := range mux.Vars(r) {
		out[k] = v
	}
	return out
}

// ok is the body of a successful delete.
var ok = map[string]bool{"ok": true}

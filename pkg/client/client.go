// Package client is a typed HTTP client for the tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/taskboard/tracker/internal/httputil"
)

const maxErrorBody = 64 << 10

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker api: %d %s", e.StatusCode, e.Message)
}

// Config configures a Client.
type Config struct {
	// BaseURL includes the API prefix, e.g. "http://localhost:5000/api".
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the tracker API. Register and Login store the returned token
// for subsequent calls.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.RWMutex
	token string
}

// New creates a client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	var out Session
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return Session{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return Session{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out struct {
		Projects []Project `json:"projects"`
	}
	err := c.do(ctx, http.MethodGet, "/projects", nil, &out)
	return out.Projects, err
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var out struct {
		Project Project `json:"project"`
	}
	err := c.do(ctx, http.MethodPost, "/projects", in, &out)
	return out.Project, err
}

func (c *Client) GetProject(ctx context.Context, id string) (ProjectDetail, error) {
	var out ProjectDetail
	err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectInput) (Project, error) {
	var out struct {
		Project Project `json:"project"`
	}
	err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), in, &out)
	return out.Project, err
}

// DeleteProject removes the project and all of its tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// ListTasks lists the caller's tasks, optionally limited to one project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	path := "/tasks"
	if projectID != "" {
		path += "?" + url.Values{"projectId": {projectID}}.Encode()
	}
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Tasks, err
}

func (c *Client) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/tasks", in, &out)
	return out.Task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, changes TaskChanges) (Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), changes.body(), &out)
	return out.Task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DashboardStats(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	err := c.do(ctx, http.MethodGet, "/tasks/stats/dashboard", nil, &out)
	return out, err
}

// Health reports whether the API answered its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeResponse(resp, target)
}

func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _, err := httputil.ReadAllWithLimit(resp.Body, maxErrorBody)
		if err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) != nil || payload.Message == "" {
			payload.Message = strings.TrimSpace(string(data))
		}
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tidwall/gjson"

	"github.com/taskboard/tracker/internal/app/auth"
	"github.com/taskboard/tracker/internal/logging"
)

const testSecret = "test-secret"

func newTestMiddleware(secret string, skipPaths []string) *AuthMiddleware {
	return NewAuthMiddleware(auth.NewTokenService(secret), logging.NewDiscard(), nil, skipPaths)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func generateTestToken(t *testing.T, secret, userID string, expired bool) string {
	t.Helper()
	issued := time.Now()
	if expired {
		issued = issued.Add(-8 * 24 * time.Hour)
	}
	svc := auth.NewTokenService(secret, auth.WithClock(func() time.Time { return issued }))
	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/projects", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_Handler_SkipPaths(t *testing.T) {
	handler := newTestMiddleware(testSecret, []string{"/api/health"}).Handler(okHandler())

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_Handler_MissingToken(t *testing.T) {
	handler := newTestMiddleware(testSecret, nil).Handler(okHandler())

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"no bearer prefix", "token123"},
		{"wrong scheme", "Basic token123"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(handler, tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Status code = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if msg := gjson.Get(rec.Body.String(), "message").String(); msg != "Missing token" {
				t.Errorf("message = %q, want Missing token", msg)
			}
		})
	}
}

func TestAuthMiddleware_Handler_ValidToken(t *testing.T) {
	var capturedUserID string
	handler := newTestMiddleware(testSecret, nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := serve(handler, "Bearer "+generateTestToken(t, testSecret, "user-123", false))

	if rec.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if capturedUserID != "user-123" {
		t.Errorf("User ID = %v, want user-123", capturedUserID)
	}
}

func TestAuthMiddleware_Handler_RejectsBadTokens(t *testing.T) {
	handler := newTestMiddleware(testSecret, nil).Handler(okHandler())

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", generateTestToken(t, testSecret, "user-123", true)},
		{"wrong secret", generateTestToken(t, "other-secret", "user-123", false)},
		{"garbage", "invalid.token.here"},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(handler, "Bearer "+tt.token)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Status code = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if msg := gjson.Get(rec.Body.String(), "message").String(); msg != "Invalid token" {
				t.Errorf("message = %q, want Invalid token", msg)
			}
		})
	}
}

func TestAuthMiddleware_Handler_MissingSecret(t *testing.T) {
	handler := newTestMiddleware("", nil).Handler(okHandler())

	rec := serve(handler, "Bearer "+generateTestToken(t, testSecret, "user-123", false))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if msg := gjson.Get(rec.Body.String(), "message").String(); msg != "JWT_SECRET is missing" {
		t.Errorf("message = %q", msg)
	}

	// A missing token is still reported first.
	rec = serve(handler, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_Handler_PreservesTraceID(t *testing.T) {
	var capturedTraceID string
	handler := newTestMiddleware(testSecret, nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedTraceID = logging.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/projects", nil)
	req = req.WithContext(logging.WithTraceID(req.Context(), "trace-456"))
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, testSecret, "user-123", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if capturedTraceID != "trace-456" {
		t.Errorf("Trace ID = %v, want trace-456", capturedTraceID)
	}
}

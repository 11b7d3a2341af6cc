// Package middleware provides HTTP middleware for the tracker API
package middleware

import (
	"net/http"
	"strings"

	"github.com/taskboard/tracker/internal/app/auth"
	"github.com/taskboard/tracker/internal/app/metrics"
	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/httputil"
	"github.com/taskboard/tracker/internal/logging"
)

const bearerPrefix = "Bearer "

// AuthMiddleware admits requests carrying a valid bearer token and places the
// identity id in the request context.
type AuthMiddleware struct {
	tokens    *auth.TokenService
	logger    *logging.Logger
	errors    *httputil.ErrorWriter
	skipPaths map[string]bool
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokens *auth.TokenService, logger *logging.Logger, errs *httputil.ErrorWriter, skipPaths []string) *AuthMiddleware {
	skip := make(map[string]bool)
	for _, path := range skipPaths {
		skip[path] = true
	}
	if errs == nil {
		errs = httputil.NewErrorWriter(logger, false)
	}

	return &AuthMiddleware{
		tokens:    tokens,
		logger:    logger,
		errors:    errs,
		skipPaths: skip,
	}
}

// Handler returns the middleware handler
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			metrics.RecordAuthFailure("missing_token")
			m.errors.Write(w, r, errors.Unauthorized("Missing token"))
			return
		}

		identityID, err := m.tokens.Verify(token)
		if err != nil {
			if errors.HasCode(err, errors.CodeInvalidToken) {
				metrics.RecordAuthFailure("invalid_token")
				m.logger.WithContext(r.Context()).WithError(err).Warn("Token validation failed")
			}
			m.errors.Write(w, r, err)
			return
		}

		ctx := logging.WithUserID(r.Context(), identityID)
		m.logger.WithContext(ctx).Debug("Authentication successful")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an Authorization header. Any other
// scheme counts as no token at all.
func bearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// GetUserID extracts the authenticated identity id from context
func GetUserID(r *http.Request) string {
	return logging.GetUserID(r.Context())
}

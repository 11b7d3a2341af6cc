package middleware

import (
	"fmt"
	"net/http"

	"github.com/taskboard/tracker/internal/httputil"
)

// Recovery turns a handler panic into a generic 500.
func Recovery(errs *httputil.ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					errs.Write(w, r, fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

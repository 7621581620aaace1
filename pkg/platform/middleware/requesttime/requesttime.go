// Package requesttime pins a single "now" for the lifetime of a request so
// audit events and domain timestamps written by one request agree.
package requesttime

import (
	"net/http"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

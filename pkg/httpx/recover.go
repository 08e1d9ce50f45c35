package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/aussiebroadwan/library/pkg/slogx"
)

// RecoverMiddleware turns a handler panic into a 500 with a generic body.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slogx.FromContext(r.Context()).Error("unhandled panic",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				WriteMessage(w, http.StatusInternalServerError, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

package http

import (
	"net/http"

	"github.com/aussiebroadwan/library/pkg/httpx"
)

// SmokeTestHandler answers GET /test with a plain-text marker.
func SmokeTestHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("SERVER WORKING"))
}

// APINotFoundHandler answers unmatched /api/ paths with JSON rather than the
// static file server's HTML 404.
func APINotFoundHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteMessage(w, http.StatusNotFound, "API Route Not Found")
}

// StaticHandler serves the frontend from dir for GET and HEAD.
func StaticHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

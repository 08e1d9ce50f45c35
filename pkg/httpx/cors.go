package httpx

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware allows browser frontends hosted elsewhere to call the API.
// An empty origin list or "*" allows any origin.
func CORSMiddleware(allowedOrigins []string) Middleware {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler
}

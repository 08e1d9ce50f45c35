package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/library/pkg/jwtx"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

// UnauthorizedMessage is the only body a rejected bearer token ever gets.
const UnauthorizedMessage = "Unauthorized"

// AuthnMiddleware admits requests carrying a valid bearer token and stores
// the verified claims on the request context. It never touches the store.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				log.Debug("request without bearer token")
				writeBearerError(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively per RFC 6750.
func BearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth. The reason is kept out
// of the response on purpose.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteMessage(w, http.StatusUnauthorized, UnauthorizedMessage)
}

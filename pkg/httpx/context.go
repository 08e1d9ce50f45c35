package httpx

import (
	"context"

	"github.com/aussiebroadwan/library/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyClaims ctxKey = "claims"
)

// Identity is the caller attached to a request by AuthnMiddleware.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, CtxKeyClaims, c)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	if !ok {
		return Identity{}, false
	}
	return Identity{ID: c.UserID, Username: c.Username}, true
}

// ClaimsFromContext returns the full verified claims, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

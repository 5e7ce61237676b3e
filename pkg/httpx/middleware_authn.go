package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// CredentialHolder is the part of authsdk.Session RequireSession needs.
type CredentialHolder interface {
	Current() (authsdk.Credential, bool)
}

// RequireSession rejects requests while no shopper is logged in. It does not
// check expiry; an expired token is refreshed by the dispatcher on first use.
func RequireSession(holder CredentialHolder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, ok := holder.Current()
			if !ok {
				slogx.FromContext(r.Context()).Debug("no session held, rejecting request")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="login required"`)
				WriteError(w, http.StatusUnauthorized, "auth_required", "Please log in to continue.")
				return
			}

			ctx := contextWithClaims(r.Context(), cred.Claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.SubjectID())
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

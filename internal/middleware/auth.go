package middleware

import (
	"net/http"
	"strings"

	"github.com/taskpilot/taskpilot/internal/apperr"
	"github.com/taskpilot/taskpilot/internal/ctxkeys"
	"github.com/taskpilot/taskpilot/internal/identity"
)

// RequireAuth verifies the Authorization bearer token against the identity
// provider and threads the verified identity into the request context. The
// identity value is set once here and never mutated downstream.
func RequireAuth(verifier identity.Verifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				apperr.Write(w, apperr.Unauthorized())
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				apperr.Write(w, apperr.Unauthorized())
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				apperr.Write(w, apperr.Unauthorized())
				return
			}

			ctx := ctxkeys.WithIdentity(r.Context(), &id)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

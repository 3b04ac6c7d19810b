package middleware

import (
	"net/http"

	"anitrack/pkg/identity"
)

// Resolver resolves the identity behind a request.
type Resolver interface {
	ResolveRequest(r *http.Request) (*identity.Identity, bool)
}

// Identity attaches the session owner, if any, to the request context.
// Anonymous requests pass through untouched; handlers decide whether they
// need a user.
func Identity(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := resolver.ResolveRequest(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), id)))
		})
	}
}

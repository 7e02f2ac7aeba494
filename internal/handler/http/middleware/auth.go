package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the caller's claims on the context. jwtauth.Verifier must run first.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, m, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		claims, err := jwt.ParseClaims(m, jwt.TypeAccess)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the claims stored by AuthRequired.
func ClaimsFrom(ctx context.Context) (jwt.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(jwt.Claims)
	return c, ok
}

// ActorFrom is the dispatcher identity of the caller.
func ActorFrom(ctx context.Context) dispatch.Actor {
	c, _ := ClaimsFrom(ctx)
	return dispatch.Actor{ID: c.UserID, Name: c.Name, Role: string(c.Role)}
}

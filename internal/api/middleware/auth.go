package middleware

import (
	"context"
	"net/http"

	"github.com/eventmanager/server/internal/api/respond"
	"github.com/eventmanager/server/internal/auth"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// Authorize guards a route with bearer-token authentication. A request
// without an Authorization header is rejected with 403; a malformed,
// tampered or expired token with 401. Both checks run before any
// storage access. On success the verified claims are attached to the
// request context.
func Authorize(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Message(w, http.StatusForbidden, "No token provided.")
				return
			}

			token, err := auth.TokenFromHeader(header)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := ContextWithUser(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithUser attaches verified claims to a context.
func ContextWithUser(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// UserFromContext retrieves the authenticated claims, or nil when the
// request did not pass through Authorize.
func UserFromContext(ctx context.Context) *auth.Claims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(userClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

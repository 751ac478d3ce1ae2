package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/EmanuelGdA/AnjoAnimal/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// TeamIdentity stamps actions performed outside an authenticated session.
const TeamIdentity = "Equipe"

// AuthMiddleware validates the session token and injects the operator's
// e-mail into the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			token, err := auth.ExtractToken(authHeader)
			if err != nil {
				writeError(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.ValidateToken(token)
			if err != nil {
				writeError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the operator e-mail from the context, or TeamIdentity
// when the request carries no authenticated identity.
func Identity(ctx context.Context) string {
	if email, ok := ctx.Value(identityContextKey).(string); ok && email != "" {
		return email
	}
	return TeamIdentity
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/session"
	"github.com/medremhq/medrem-api/internal/token"
)

type contextKey string

const userContextKey contextKey = "user_context"

// Auth validates the bearer token and cross-checks that the session manager
// still holds that identity. Requests without a valid signed-in identity get
// a 401.
func Auth(issuer *token.Issuer, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				log.Warn().Err(err).Msg("Rejected bearer token")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// The token is only as good as the session behind it: a logout
			// invalidates outstanding tokens immediately.
			current := sessions.Current()
			if current == nil || current.ID != claims.UserID {
				http.Error(w, "Session expired", http.StatusUnauthorized)
				return
			}

			uc := models.UserContext{UserID: claims.UserID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), userContextKey, uc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole denies the request unless the identity's role is in the
// allowed set
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uc, ok := GetUserContext(r.Context())
			if !ok {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			for _, role := range allowed {
				if uc.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn().
				Str("user_id", uc.UserID).
				Str("role", string(uc.Role)).
				Str("path", r.URL.Path).
				Msg("Role not allowed for route")
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

// GetUserContext extracts the request identity from the context
func GetUserContext(ctx context.Context) (models.UserContext, bool) {
	uc, ok := ctx.Value(userContextKey).(models.UserContext)
	return uc, ok
}

// WithUserContext attaches an identity to a context. Used by tests.
func WithUserContext(ctx context.Context, uc models.UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/domain"
)

type contextKey string

const userUIDKey contextKey = "userUID"

// SetUserUID returns a context with the user uid set. Used by auth middleware.
func SetUserUID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, userUIDKey, uid)
}

// UserUIDFromContext returns the authenticated user uid from the context, if present.
func UserUIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userUIDKey).(int64)
	return uid, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// user uid in the request context. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			uid, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetUserUID(r.Context(), uid))
			next(w, r)
		}
	}
}

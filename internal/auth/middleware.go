package auth

import (
	"context"
	"net/http"

	"github.com/moslemp47/vpnpanel1/internal/user"
)

type ctxKey string

const CtxUserID ctxKey = "userID"

// Middleware authenticates the bearer token and injects the user id into
// the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
			return
		}
		userID, err := s.ResolveIdentity(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id set by Middleware.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserID).(uint)
	return id, ok
}

// RequireAdmin gates a route on the stored admin flag. The flag is read
// from the database, not the token, so demotions take effect immediately.
func RequireAdmin(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
				return
			}
			u, err := users.FindByID(r.Context(), userID)
			if err != nil || !u.IsAdmin {
				writeError(w, http.StatusForbidden, "admins only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

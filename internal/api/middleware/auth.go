package middleware

import (
	"context"
	"net/http"

	"shopcaster/internal/common"
	"shopcaster/internal/common/security"
	"shopcaster/internal/domain/model"
	"shopcaster/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userCtxKey contextKey = "currentUser"

// SessionTokenFromCookie extracts the session token for jwtauth.Verify.
// Returns "" when the cookie is absent.
func SessionTokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(security.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticator resolves the current user from the verified session token in
// the request context. Every failure along the chain — no cookie, tampered or
// expired token, non-numeric identity claim, user row gone — collapses into
// the same 401; nothing here panics or leaks why resolution failed.
func Authenticator(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			userID, err := security.UserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed by Authenticator.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}

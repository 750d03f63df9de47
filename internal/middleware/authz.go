package middleware

import (
	"fmt"
	"net/http"
	"trivia-api/internal/auth"
	"trivia-api/internal/logger"
)

// RequireScope creates a middleware that lets a request through only when
// the authorizer grants scope. Unauthenticated callers get 401, callers
// lacking the scope get 403.
func RequireScope(a auth.Authorizer, scope string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := a.Authorize(r, scope)
			if err != nil {
				log.Error(err, fmt.Sprintf("Authorization check for %q failed", scope))
				WriteError(w, http.StatusInternalServerError)
				return
			}

			switch decision {
			case auth.Allowed:
				next.ServeHTTP(w, r)
			case auth.Unauthenticated:
				WriteError(w, http.StatusUnauthorized)
			default:
				WriteError(w, http.StatusForbidden)
			}
		})
	}
}

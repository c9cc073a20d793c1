package router

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lumoshive/service-account-go/internal/token"
)

// RequireAuth guards a route with bearer-token authentication. Every failure
// path writes exactly one terminal response; on success the decoded user id
// is attached to the request context.
func RequireAuth(issuer *token.Issuer, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "no token provided")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			userID, err := issuer.Verify(raw)
			if err != nil {
				logger.Debugw("token verification failed", "err", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "token verification failed")
				return
			}
			next.ServeHTTP(w, r.WithContext(token.NewContext(r.Context(), userID)))
		})
	}
}

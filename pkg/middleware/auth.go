package middleware

import (
	"net/http"
	"strings"

	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

// BearerToken extracts the token from "Authorization: Bearer <token>" into the
// request context. Verification is left to the handler's service.
func BearerToken(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "No token provided")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.Warn("Malformed authorization header", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			ctx := utils.SetTokenContext(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

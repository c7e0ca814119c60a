package wire

import (
	"cinefellas/internal/adaptor"
	"cinefellas/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser mounts the token-protected identity lookup.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	r.With(middleware.BearerToken(log)).Get("/api/user", userHandler.GetCurrentUser)
}

package wire

import (
	"cinefellas/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHealth(r chi.Router, healthHandler *adaptor.HealthHandler) {
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
}

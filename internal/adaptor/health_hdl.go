package adaptor

import (
	"net/http"

	"cinefellas/internal/usecase"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	service usecase.HealthService
	log     *zap.Logger
}

func NewHealthHandler(service usecase.HealthService, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		log:     log,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks, ok := h.service.Ready(r.Context())
	body := map[string]any{"status": usecase.CheckOK, "checks": checks}
	if !ok {
		body["status"] = usecase.CheckDown
		utils.WriteJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	utils.WriteJSON(w, http.StatusOK, body)
}

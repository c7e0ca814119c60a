package adaptor

import (
	"net/http"

	"cinefellas/internal/dto/response"
	"cinefellas/internal/usecase"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetCurrentUser handles GET /api/user
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	// token set by middleware.BearerToken; an empty one is rejected by the service
	token, _ := utils.GetTokenFromContext(r.Context())

	profile, err := h.service.WhoAmI(r.Context(), token)
	if err != nil {
		handleServiceError(h.log, w, err, "get current user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.UserResponse{Success: true, User: profile})
}

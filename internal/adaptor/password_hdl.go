package adaptor

import (
	"net/http"

	"cinefellas/internal/dto/request"
	"cinefellas/internal/usecase"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	service usecase.PasswordService
	log     *zap.Logger
}

func NewPasswordHandler(service usecase.PasswordService, log *zap.Logger) *PasswordHandler {
	return &PasswordHandler{
		service: service,
		log:     log,
	}
}

// RequestReset handles POST /api/request-password-reset
func (h *PasswordHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req request.RequestResetRequest
	if !decodeAndValidate(h.log, w, r, &req) {
		return
	}

	if err := h.service.RequestReset(r.Context(), req.Email); err != nil {
		handleServiceError(h.log, w, err, "request password reset")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to your email", nil)
}

// ResetPassword handles POST /api/reset-password
func (h *PasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeAndValidate(h.log, w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successful", nil)
}

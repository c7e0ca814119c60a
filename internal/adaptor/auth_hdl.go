package adaptor

import (
	"net/http"

	"cinefellas/internal/data/entity"
	"cinefellas/internal/dto/request"
	"cinefellas/internal/usecase"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	otp     usecase.OTPService
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(otp usecase.OTPService, service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		otp:     otp,
		service: service,
		log:     log,
	}
}

// GenerateOTP handles POST /api/generate-otp
func (h *AuthHandler) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateOTPRequest
	if !decodeAndValidate(h.log, w, r, &req) {
		return
	}

	if err := h.otp.IssueOTP(r.Context(), req.Email, entity.OTPPurposeRegistration); err != nil {
		handleServiceError(h.log, w, err, "generate OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully", nil)
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(h.log, w, r, &req) {
		return
	}

	if _, err := h.service.Register(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseSuccess(w, "User registered successfully", nil)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(h.log, w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinefellas/internal/usecase"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Password *PasswordHandler
	User     *UserHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.OTP, service.Auth, log),
		Password: NewPasswordHandler(service.Password, log),
		User:     NewUserHandler(service.User, log),
		Health:   NewHealthHandler(service.Health, log),
	}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 itself and returns false when the request is unusable.
func decodeAndValidate(log *zap.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("Invalid request body", zap.String("path", r.URL.Path), zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		log.Warn("Validation failed",
			zap.String("path", r.URL.Path),
			zap.String("errors", utils.FormatValidationErrors(validationErrors)),
		)
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// handleServiceError maps service errors to responses. Order matters:
// ErrInvalidOrExpiredOTP wraps the individual OTP reasons.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrExpiredOTP):
		log.Warn(operation+" failed - invalid OTP", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid or expired OTP", nil)

	case errors.Is(err, usecase.ErrEmailInvalid):
		utils.ResponseBadRequest(w, "Invalid email", nil)

	case errors.Is(err, usecase.ErrInvalidPurpose):
		utils.ResponseBadRequest(w, "Invalid OTP purpose", nil)

	case errors.Is(err, usecase.ErrOTPMissing):
		log.Warn(operation+" failed - OTP not found", zap.Error(err))
		utils.ResponseBadRequest(w, "OTP not found. Please request a new OTP.", nil)

	case errors.Is(err, usecase.ErrOTPMismatch):
		log.Warn(operation+" failed - OTP mismatch", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid OTP", nil)

	case errors.Is(err, usecase.ErrOTPExpired):
		log.Warn(operation+" failed - OTP expired", zap.Error(err))
		utils.ResponseBadRequest(w, "OTP has expired. Please request a new OTP.", nil)

	case errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, "Email already exists", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrMissingToken):
		utils.ResponseUnauthorized(w, "No token provided")

	case errors.Is(err, usecase.ErrInvalidToken):
		log.Warn(operation+" failed - invalid token", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid or expired token")

	case errors.Is(err, usecase.ErrAccountNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "User not found")

	case errors.Is(err, usecase.ErrServerMisconfigured):
		log.Error(operation+" failed - server misconfigured", zap.Error(err))
		utils.ResponseInternalError(w, "Server configuration error")

	case errors.Is(err, usecase.ErrDispatchFailed):
		log.Error(operation+" failed - email dispatch", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to send OTP")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

package usecase

import "errors"

// Errors returned by the services. Handlers map them to status codes with
// errors.Is, so wrap them with %w and never compare messages.
var (
	ErrEmailInvalid        = errors.New("invalid email")
	ErrInvalidPurpose      = errors.New("invalid OTP purpose")
	ErrDispatchFailed      = errors.New("failed to send OTP")
	ErrEmailTaken          = errors.New("email already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrMissingToken        = errors.New("no token provided")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrServerMisconfigured = errors.New("server misconfigured")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
)

// OTP rejection reasons. Registration surfaces them directly; password reset
// wraps them under ErrInvalidOrExpiredOTP so callers see one outcome while
// errors.Is can still tell them apart.
var (
	ErrOTPMissing      = errors.New("OTP not found")
	ErrOTPMismatch     = errors.New("invalid OTP")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrOTPWrongPurpose = errors.New("OTP issued for another purpose")
)

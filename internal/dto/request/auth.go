package request

type GenerateOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

type RegisterRequest struct {
	Username    string     `json:"username" validate:"required,max=50"`
	Email       string     `json:"email" validate:"required"`
	Password    string     `json:"password" validate:"required"`
	DOB         string     `json:"dob"`
	Number      string     `json:"number" validate:"omitempty,max=20"`
	Language    string     `json:"language"`
	Preferences StringList `json:"preferences"`
	OTP         Code       `json:"otp" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	OTP         Code   `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

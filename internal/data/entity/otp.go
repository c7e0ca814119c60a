package entity

import (
	"time"
)

type OTPPurpose string

const (
	OTPPurposeRegistration  OTPPurpose = "registration"
	OTPPurposePasswordReset OTPPurpose = "password-reset"
)

func (p OTPPurpose) Valid() bool {
	return p == OTPPurposeRegistration || p == OTPPurposePasswordReset
}

// OTP is the single outstanding code for an email address.
type OTP struct {
	Email     string     `json:"email"`
	Code      int        `json:"code"`
	Purpose   OTPPurpose `json:"purpose"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// IsLive reports whether the code may still be redeemed at now.
// The window is inclusive of ExpiresAt.
func (o *OTP) IsLive(now time.Time) bool {
	return !now.After(o.ExpiresAt)
}

// Same reports whether two records describe the same issued code.
func (o *OTP) Same(other *OTP) bool {
	if o == nil || other == nil {
		return false
	}
	return o.Email == other.Email &&
		o.Code == other.Code &&
		o.Purpose == other.Purpose &&
		o.ExpiresAt.Equal(other.ExpiresAt)
}

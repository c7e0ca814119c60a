package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== OTP ====================

const (
	OTPMin = 1000
	OTPMax = 9999
)

// GenerateOTP draws a code uniformly from [OTPMin, OTPMax].
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(OTPMax-OTPMin+1))
	if err != nil {
		return 0, fmt.Errorf("generate otp: %w", err)
	}
	return OTPMin + int(n.Int64()), nil
}

// ==================== EMAIL ====================

// NormalizeEmail returns the canonical lookup key for an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailLike reports whether a normalized address has the minimal shape
// accepted by the OTP and account flows.
func IsEmailLike(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

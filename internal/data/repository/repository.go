package repository

import (
	"errors"

	"cinefellas/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrDuplicateEmail is returned when the store's uniqueness constraint
	// rejects an insert.
	ErrDuplicateEmail = errors.New("email already exists")
)

type Repository struct {
	User UserRepository
	OTP  OTPRepository
}

// NewRepository groups the credential store with the given OTP ledger driver.
func NewRepository(db database.PgxIface, otp OTPRepository, log *zap.Logger) *Repository {
	return &Repository{
		User: NewUserRepository(db, log),
		OTP:  otp,
	}
}

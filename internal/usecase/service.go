package usecase

import (
	"cinefellas/internal/data/repository"
	"cinefellas/pkg/mailer"
	"cinefellas/pkg/metrics"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	OTP      OTPService
	Auth     AuthService
	Password PasswordService
	User     UserService
	Health   HealthService
}

func NewService(
	repo *repository.Repository,
	mailer mailer.Mailer,
	config *utils.Config,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	tokens := NewTokenService(config, log)
	otp := NewOTPService(repo.OTP, mailer, config, m, log)

	return &Service{
		OTP:      otp,
		Auth:     NewAuthService(repo, tokens, m, log),
		Password: NewPasswordService(repo, otp, m, log),
		User:     NewUserService(repo.User, tokens, log),
		Health:   NewHealthService(repo, log),
	}
}

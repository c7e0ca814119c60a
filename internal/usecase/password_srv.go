package usecase

import (
	"context"
	"fmt"
	"time"

	"cinefellas/internal/data/entity"
	"cinefellas/internal/data/repository"
	"cinefellas/internal/dto/request"
	"cinefellas/pkg/metrics"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type PasswordService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type passwordService struct {
	repo    *repository.Repository
	otp     OTPService
	metrics *metrics.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewPasswordService(
	repo *repository.Repository,
	otp OTPService,
	m *metrics.Metrics,
	log *zap.Logger,
) PasswordService {
	return &passwordService{
		repo:    repo,
		otp:     otp,
		metrics: m,
		now:     time.Now,
		log:     log.With(zap.String("service", "password")),
	}
}

// RequestReset mails a password-reset code to an existing account.
func (s *passwordService) RequestReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if !utils.IsEmailLike(email) {
		return ErrEmailInvalid
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrAccountNotFound
	}

	return s.otp.IssueOTP(ctx, email, entity.OTPPurposePasswordReset)
}

// ResetPassword redeems a password-reset code and stores the new password.
// Every OTP failure is reported as ErrInvalidOrExpiredOTP with the reason
// wrapped beneath it.
func (s *passwordService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	email := utils.NormalizeEmail(req.Email)

	otp, err := s.repo.OTP.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("read OTP: %w", err)
	}

	now := s.now()
	err = checkOTP(otp, string(req.OTP), entity.OTPPurposePasswordReset, now)
	s.metrics.OTPRedeemed(string(entity.OTPPurposePasswordReset), redemptionResult(err))
	if err != nil {
		s.log.Warn("Reset OTP rejected", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidOrExpiredOTP, err)
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Reset OTP for unknown account", zap.String("email", email))
		return fmt.Errorf("%w: %w", ErrInvalidOrExpiredOTP, ErrAccountNotFound)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	// Claim the code before mutating so a concurrent redemption loses.
	claimed, err := s.repo.OTP.DeleteIfMatch(ctx, otp)
	if err != nil {
		return fmt.Errorf("claim OTP: %w", err)
	}
	if !claimed {
		s.log.Warn("Reset OTP already consumed or superseded", zap.String("email", email))
		return fmt.Errorf("%w: %w", ErrInvalidOrExpiredOTP, ErrOTPMissing)
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, hash, now); err != nil {
		s.restore(ctx, otp, now)
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// restore puts a claimed code back for the rest of its retention unless a
// newer code took the slot meanwhile.
func (s *passwordService) restore(ctx context.Context, otp *entity.OTP, now time.Time) {
	ttl := otp.ExpiresAt.Add(otpRetentionGrace).Sub(now)
	if ttl <= 0 {
		return
	}
	restored, err := s.repo.OTP.PutIfAbsent(context.WithoutCancel(ctx), otp, ttl)
	if err != nil {
		s.log.Warn("Failed to restore reset OTP", zap.Error(err), zap.String("email", otp.Email))
		return
	}
	if !restored {
		s.log.Info("Reset OTP superseded before restore", zap.String("email", otp.Email))
	}
}

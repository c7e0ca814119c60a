package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cinefellas/internal/data/entity"
	"cinefellas/internal/data/repository"
	"cinefellas/pkg/mailer"
	"cinefellas/pkg/metrics"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

// otpRetentionGrace keeps a record in the ledger a little past its expiry so
// a late submission is reported as expired rather than missing.
const otpRetentionGrace = time.Minute

type OTPService interface {
	// IssueOTP generates a fresh code for email, replacing any outstanding
	// one, and mails it.
	IssueOTP(ctx context.Context, email string, purpose entity.OTPPurpose) error
}

type otpService struct {
	ledger  repository.OTPRepository
	mailer  mailer.Mailer
	expiry  time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewOTPService(
	ledger repository.OTPRepository,
	mailer mailer.Mailer,
	config *utils.Config,
	m *metrics.Metrics,
	log *zap.Logger,
) OTPService {
	return &otpService{
		ledger:  ledger,
		mailer:  mailer,
		expiry:  config.OTPExpiry(),
		metrics: m,
		now:     time.Now,
		log:     log.With(zap.String("service", "otp")),
	}
}

func (s *otpService) IssueOTP(ctx context.Context, email string, purpose entity.OTPPurpose) error {
	email = utils.NormalizeEmail(email)
	if !utils.IsEmailLike(email) {
		s.metrics.OTPIssued(string(purpose), "invalid")
		return ErrEmailInvalid
	}
	if !purpose.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPurpose, purpose)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	now := s.now()
	otp := &entity.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(s.expiry),
	}

	if err := s.ledger.Put(ctx, otp, s.expiry+otpRetentionGrace); err != nil {
		s.metrics.OTPIssued(string(purpose), "error")
		return fmt.Errorf("store OTP: %w", err)
	}

	subject, body := s.message(otp)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.log.Error("OTP dispatch failed",
			zap.Error(err),
			zap.String("email", email),
			zap.String("purpose", string(purpose)),
		)
		// A newer code issued meanwhile must survive the rollback.
		if _, rbErr := s.ledger.DeleteIfMatch(context.WithoutCancel(ctx), otp); rbErr != nil {
			s.log.Warn("Failed to roll back undelivered OTP", zap.Error(rbErr), zap.String("email", email))
		}
		s.metrics.OTPIssued(string(purpose), "dispatch_failed")
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	s.metrics.OTPIssued(string(purpose), "sent")
	s.log.Info("OTP issued",
		zap.String("email", email),
		zap.String("purpose", string(purpose)),
		zap.Time("expires_at", otp.ExpiresAt),
	)
	return nil
}

func (s *otpService) message(otp *entity.OTP) (subject, body string) {
	minutes := int(s.expiry / time.Minute)
	switch otp.Purpose {
	case entity.OTPPurposePasswordReset:
		return "Password Reset OTP for CINEFELLAS",
			fmt.Sprintf("Your OTP for password reset is: %d. It will expire in %d minutes.", otp.Code, minutes)
	default:
		return "Your OTP for CINEFELLAS Registration",
			fmt.Sprintf("Your OTP for registration is: %d. It will expire in %d minutes.", otp.Code, minutes)
	}
}

// checkOTP returns nil when submitted redeems rec for purpose at now, or the
// first failing reason in order: missing, mismatch, wrong purpose, expired.
func checkOTP(rec *entity.OTP, submitted string, purpose entity.OTPPurpose, now time.Time) error {
	if rec == nil {
		return ErrOTPMissing
	}

	code, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil || code != rec.Code {
		return ErrOTPMismatch
	}

	if rec.Purpose != purpose {
		return ErrOTPWrongPurpose
	}

	if !rec.IsLive(now) {
		return ErrOTPExpired
	}

	return nil
}

// redemptionResult is the metrics label for a checkOTP outcome.
func redemptionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrOTPMissing):
		return "missing"
	case errors.Is(err, ErrOTPMismatch):
		return "mismatch"
	case errors.Is(err, ErrOTPWrongPurpose):
		return "wrong_purpose"
	case errors.Is(err, ErrOTPExpired):
		return "expired"
	default:
		return "error"
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinefellas/internal/data/entity"
	"cinefellas/internal/data/repository"
	"cinefellas/internal/dto/request"
	"cinefellas/internal/dto/response"
	"cinefellas/pkg/metrics"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
}

type authService struct {
	repo    *repository.Repository
	tokens  TokenService
	metrics *metrics.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens TokenService,
	m *metrics.Metrics,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		tokens:  tokens,
		metrics: m,
		now:     time.Now,
		log:     log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*entity.User, error) {
	// 1. Email shape
	email := utils.NormalizeEmail(req.Email)
	if !utils.IsEmailLike(email) {
		return nil, ErrEmailInvalid
	}

	// 2. Registration code
	otp, err := s.repo.OTP.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("read OTP: %w", err)
	}

	now := s.now()
	err = checkOTP(otp, string(req.OTP), entity.OTPPurposeRegistration, now)
	s.metrics.OTPRedeemed(string(entity.OTPPurposeRegistration), redemptionResult(err))
	if err != nil {
		s.log.Warn("Registration OTP rejected", zap.String("email", email), zap.Error(err))
		if errors.Is(err, ErrOTPWrongPurpose) {
			return nil, fmt.Errorf("%w: %w", ErrOTPMismatch, err)
		}
		return nil, err
	}

	// 3. Email not yet registered
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// 4. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 5. Save user
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        email,
		PasswordHash: hash,
		DOB:          req.DOB,
		Phone:        req.Number,
		Language:     req.Language,
		Preferences:  []string(req.Preferences),
	}
	if user.Preferences == nil {
		user.Preferences = []string{}
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// 6. Consume the code. The account exists now, so a failure here is only logged.
	if _, err := s.repo.OTP.DeleteIfMatch(ctx, otp); err != nil {
		s.log.Warn("Failed to consume registration OTP", zap.Error(err), zap.String("email", email))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// unknown email and wrong password must be indistinguishable to the caller
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

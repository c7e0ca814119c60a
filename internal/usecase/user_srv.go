package usecase

import (
	"context"
	"fmt"

	"cinefellas/internal/data/repository"
	"cinefellas/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	// WhoAmI resolves a session token to the caller's public profile.
	WhoAmI(ctx context.Context, token string) (*response.UserProfile, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, tokens TokenService, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) WhoAmI(ctx context.Context, token string) (*response.UserProfile, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	id, err := us.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		us.log.Warn("Token for missing user", zap.String("user_id", id.String()))
		return nil, ErrUserNotFound
	}

	return response.UserToProfile(user), nil
}

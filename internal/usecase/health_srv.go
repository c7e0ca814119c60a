package usecase

import (
	"context"

	"cinefellas/internal/data/repository"

	"go.uber.org/zap"
)

const (
	CheckOK   = "ok"
	CheckDown = "down"
)

type HealthService interface {
	// Ready pings every backing store. ok is false when any of them is down.
	Ready(ctx context.Context) (checks map[string]string, ok bool)
}

type healthService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHealthService(repo *repository.Repository, log *zap.Logger) HealthService {
	return &healthService{repo: repo, log: log.With(zap.String("service", "health"))}
}

func (s *healthService) Ready(ctx context.Context) (map[string]string, bool) {
	pings := map[string]func(context.Context) error{
		"postgres":   s.repo.User.Ping,
		"otp_ledger": s.repo.OTP.Ping,
	}

	checks := make(map[string]string, len(pings))
	ok := true
	for name, ping := range pings {
		if err := ping(ctx); err != nil {
			s.log.Warn("Readiness check failed", zap.String("check", name), zap.Error(err))
			checks[name] = CheckDown
			ok = false
			continue
		}
		checks[name] = CheckOK
	}
	return checks, ok
}

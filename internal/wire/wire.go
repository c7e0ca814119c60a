package wire

import (
	"cinefellas/internal/adaptor"
	"cinefellas/internal/data/repository"
	"cinefellas/internal/usecase"
	"cinefellas/pkg/mailer"
	"cinefellas/pkg/metrics"
	"cinefellas/pkg/middleware"
	"cinefellas/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Metrics *metrics.Metrics
}

// Wiring builds services, handlers and routes from the stores and mailer.
func Wiring(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, logger *zap.Logger) *App {
	m := metrics.New()
	service := usecase.NewService(repo, mail, config, m, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, m, config, logger),
		Metrics: m,
	}
}

func setupRouter(handler *adaptor.Handler, m *metrics.Metrics, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware; RequestID first so the access log can carry it
	r.Use(chimw.RequestID)
	r.Use(m.Middleware)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}

	wireHealth(r, handler.Health)
	r.Handle("/metrics", m.Handler())
	wireAuth(r, handler.Auth, handler.Password)
	wireUser(r, handler.User, logger)

	return r
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinefellas/cmd"
	"cinefellas/internal/data/repository"
	"cinefellas/internal/wire"
	"cinefellas/pkg/cache"
	"cinefellas/pkg/database"
	"cinefellas/pkg/mailer"
	"cinefellas/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("otp_ledger", config.OTP.LedgerDriver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.RunMigrations {
		sqlDB := db.StdDB()
		if err := database.Migrate(ctx, sqlDB); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		_ = sqlDB.Close()
		logger.Info("Migrations applied")
	}

	// OTP ledger
	var ledger repository.OTPRepository
	switch config.OTP.LedgerDriver {
	case "memory":
		mem := repository.NewMemoryOTPRepository(logger)
		go mem.RunSweeper(ctx, time.Minute)
		ledger = mem
		logger.Warn("Using in-memory OTP ledger; run a single instance only")
	case "redis":
		client, err := cache.NewClient(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		ledger = repository.NewRedisOTPRepository(client, logger)
		logger.Info("Redis connected successfully")
	default:
		logger.Fatal("Unknown OTP ledger driver", zap.String("driver", config.OTP.LedgerDriver))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, ledger, logger)

	mail := mailer.NewSMTPMailer(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, mail, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}

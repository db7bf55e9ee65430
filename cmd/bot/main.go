package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/place-onboarding-bot/internal/config"
	"github.com/aliskhannn/place-onboarding-bot/internal/delivery/httpapi"
	"github.com/aliskhannn/place-onboarding-bot/internal/delivery/telegram"
	"github.com/aliskhannn/place-onboarding-bot/internal/infra/postgres"
	"github.com/aliskhannn/place-onboarding-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/place-onboarding-bot/internal/logger"
	"github.com/aliskhannn/place-onboarding-bot/internal/metrics"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
	"github.com/aliskhannn/place-onboarding-bot/internal/service"
	"github.com/aliskhannn/place-onboarding-bot/internal/socialapi"
	"github.com/aliskhannn/place-onboarding-bot/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	// Initialize repositories and services.
	userRepo := repository.NewUserRepository(pool)
	credentialRepo := repository.NewCredentialRepository(pool)

	userService := service.NewUserService(userRepo, postgres.NewTransactor(pool))
	credentialService := service.NewCredentialService(credentialRepo, cfg.SocialAPI.StaticToken)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNewMetrics(reg)

	api := socialapi.NewClient(socialapi.Config{
		BaseURL:      cfg.SocialAPI.BaseURL,
		Timeout:      cfg.SocialAPI.Timeout,
		MaxBodyBytes: cfg.SocialAPI.MaxBodyBytes,
	}, nil, lg.Named("socialapi"))

	coordinator := onboarding.NewCoordinator(api, api, lg.Named("coordinator"),
		onboarding.WithTimeout(cfg.SocialAPI.Timeout),
		onboarding.WithObserver(m),
	)

	sessions := storage.NewSessionStorage(cfg.Onboarding.MaxSessions, cfg.Onboarding.SessionTTL,
		func(chatID int64, s *storage.Session) {
			lg.Debug("onboarding session evicted",
				zap.Int64("chat_id", chatID),
				zap.Uint64("session", s.ID),
			)
		},
	)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		userService,
		credentialService,
		coordinator,
		sessions,
		m,
		cfg.Onboarding.DashboardURL,
	)
	if err := handler.RegisterCommands(); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpapi.NewRouter(pool, reg, httpapi.Info{
			Service: cfg.ServiceName,
			Version: cfg.Version,
		}, lg.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer coordinator.Wait()
		return handler.Run(gctx)
	})

	g.Go(func() error {
		lg.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/adapters/blob"
	"github.com/plugscrtf/marketplace-service/internal/adapters/botapi"
	eventadapter "github.com/plugscrtf/marketplace-service/internal/adapters/events"
	httpadapter "github.com/plugscrtf/marketplace-service/internal/adapters/http"
	redisadapter "github.com/plugscrtf/marketplace-service/internal/adapters/redis"
	"github.com/plugscrtf/marketplace-service/internal/adapters/telegram"
	"github.com/plugscrtf/marketplace-service/internal/application"
	"github.com/plugscrtf/marketplace-service/internal/ports"
	"github.com/plugscrtf/marketplace-service/internal/workers"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	sweeper    *workers.MaintenanceSweeper
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	redisClient, err := redisadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	kv := redisadapter.NewKV(redisClient, logger)

	settingsRepo := redisadapter.NewSettingsRepository(kv, logger)
	if err := settingsRepo.EnsureDefaults(ctx); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventTopic)
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}

	var telegramNotifier ports.TelegramNotifier
	if cfg.TelegramBotToken != "" {
		telegramNotifier = telegram.NewClient(cfg.TelegramBotToken, logger)
	}
	var botNotifier ports.BotNotifier
	if cfg.BotAPIURL != "" {
		botNotifier = botapi.NewClient(cfg.BotAPIURL, cfg.BotAPIKey)
	}

	service := application.NewService(application.Dependencies{
		Config:       application.Config{ServiceName: cfg.ServiceID},
		Plugs:        redisadapter.NewPlugRepository(kv, logger),
		Products:     redisadapter.NewProductRepository(kv, logger),
		Categories:   redisadapter.NewCategoryRepository(kv, logger),
		Users:        redisadapter.NewUserRepository(kv, logger),
		UserStats:    redisadapter.NewUserStatsRepository(kv),
		Applications: redisadapter.NewApplicationRepository(kv, logger),
		Settings:     settingsRepo,
		Telegram:     telegramNotifier,
		Bot:          botNotifier,
		Files:        blob.NewClient(cfg.BlobAPIURL, cfg.BlobReadWriteToken),
		Events:       publisher,
		Logger:       logger,
	})

	handler := httpadapter.NewHandler(service, kv, logger)
	router := httpadapter.NewRouter(handler, httpadapter.Config{
		AdminPassword: cfg.AdminPassword,
		SyncSecretKey: cfg.SyncSecretKey,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		sweeper:    workers.NewMaintenanceSweeper(settingsRepo, logger, cfg.MaintenanceSweepInterval),
		cleanupFn: func(ctx context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = redisClient.Close()
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.ErrorContext(ctx, "maintenance sweeper stopped", "error", err)
		}
	}()
	r.logger.InfoContext(ctx, "api listening", "port", r.cfg.HTTPPort)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}

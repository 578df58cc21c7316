package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/wasp/youtube-channel-api/internal/config"
	"github.com/wasp/youtube-channel-api/internal/db"
	"github.com/wasp/youtube-channel-api/internal/db/repository"
	"github.com/wasp/youtube-channel-api/internal/handler"
	"github.com/wasp/youtube-channel-api/internal/metrics"
	"github.com/wasp/youtube-channel-api/internal/service"
	"github.com/wasp/youtube-channel-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.DB())
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close(pool)

	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
		zap.Int32("max_conns", pool.Config().MaxConns),
	)

	var (
		publisher service.EventPublisher = service.NoopPublisher{}
		broker    handler.BrokerHealth
	)
	if cfg.RabbitMQ.Enabled {
		mp, err := service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("initialize message publisher: %w", err)
		}
		defer func() {
			if err := mp.Close(); err != nil {
				log.Warn("Failed to close message publisher", zap.Error(err))
			}
		}()
		publisher, broker = mp, mp
		log.Info("Publishing resource events",
			zap.String("exchange", cfg.RabbitMQ.Exchange),
			zap.String("host", cfg.RabbitMQ.Host),
		)
	} else {
		log.Info("RabbitMQ disabled, resource events will not be published")
	}

	finder := repository.NewChannelFinder(pool)
	channels := service.NewChannelService(repository.NewChannelRepository(pool, finder), publisher)
	videos := service.NewVideoService(repository.NewVideoRepository(pool, finder), publisher)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if len(cfg.Auth.APIKeys) == 0 {
		log.Warn("No API keys configured, write endpoints are open")
	}

	gin.SetMode(cfg.Server.Mode)
	router := handler.NewRouter(handler.RouterConfig{
		Channels: channels,
		Videos:   videos,
		DB:       pool,
		Broker:   broker,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		APIKeys:  cfg.Auth.APIKeys,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	log.Info("Server stopped gracefully")
	return nil
}

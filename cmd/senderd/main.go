package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/application/usecase"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/service"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/infrastructure/config"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/infrastructure/messaging"
	infraPG "github.com/hari-p8-io/clearpathgateway/internal/sender/infrastructure/postgres"
	kafkapkg "github.com/hari-p8-io/clearpathgateway/pkg/kafka"
	"github.com/hari-p8-io/clearpathgateway/pkg/observability"
	pgpkg "github.com/hari-p8-io/clearpathgateway/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "fast-sender",
	})
	slog.SetDefault(logger)

	logger.Info("starting fast-sender",
		"metrics_port", cfg.MetricsPort,
		"request_topic", cfg.Topics.RejectionRequest,
		"outbound_topic", cfg.Topics.Outbound,
	)

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "fast-sender",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	senderMetrics := observability.NewSenderMetrics(prometheus.DefaultRegisterer)

	// Optional database: the idempotency store. Without it every request
	// issues a report, relying on downstream dedup.
	var repo port.RejectionRepository
	if cfg.DB.Enabled {
		pgCfg := pgpkg.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
			MaxConns: cfg.DB.MaxConns,
			MinConns: cfg.DB.MinConns,
		}
		pool, poolErr := pgpkg.NewPool(ctx, pgCfg)
		if poolErr != nil {
			logger.Error("failed to connect to database", "error", poolErr)
			os.Exit(1)
		}
		defer pool.Close()

		if migErr := pgpkg.RunMigrations(pgCfg.DSN(), "file://internal/sender/infrastructure/postgres/migrations"); migErr != nil {
			logger.Warn("migration warning", "error", migErr)
		}

		repo = infraPG.NewRejectionRepo(pool)
	}

	// Initialize Kafka producer.
	producer := kafkapkg.NewProducer(kafkapkg.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer producer.Close()

	deliverer := messaging.NewKafkaDeliverer(
		producer,
		cfg.Topics.Outbound,
		cfg.Delivery.MaxAttempts,
		cfg.Delivery.Backoff,
		cfg.Kafka.PublishTimeout,
		senderMetrics,
		logger,
	)
	events := messaging.NewKafkaStatusEventPublisher(producer, cfg.Topics.StatusEvent, cfg.Kafka.PublishTimeout)

	issueRejection := usecase.NewIssueRejection(
		service.NewPacs002Builder(),
		repo,
		deliverer,
		events,
		logger,
	)

	// Rejection-request consumer.
	listener := messaging.NewRejectionListener(issueRejection, logger)
	consumer := kafkapkg.NewConsumer(kafkapkg.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Topics.RejectionRequest, listener.Handle, logger)
	defer consumer.Close()

	// HTTP server (health + metrics).
	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: mux,
	}

	errCh := make(chan error, 2)

	go func() {
		errCh <- consumer.Start(ctx)
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.MetricsPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	}

	httpServer.Shutdown(context.Background())
	logger.Info("fast-sender stopped")
}

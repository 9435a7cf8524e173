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

	"github.com/hari-p8-io/clearpathgateway/internal/router/application/usecase"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/service"
	"github.com/hari-p8-io/clearpathgateway/internal/router/infrastructure/config"
	"github.com/hari-p8-io/clearpathgateway/internal/router/infrastructure/messaging"
	infraPG "github.com/hari-p8-io/clearpathgateway/internal/router/infrastructure/postgres"
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
		Service: "fast-router",
	})
	slog.SetDefault(logger)

	logger.Info("starting fast-router",
		"metrics_port", cfg.MetricsPort,
		"inbound_topic", cfg.Topics.Inbound,
	)

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "fast-router",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	routerMetrics := observability.NewRouterMetrics(prometheus.DefaultRegisterer)

	// Optional database: audit trail, canonical store and the shared
	// duplicate checkpoint. Without it the router runs with an in-memory
	// guard and no persistence.
	var (
		inboundRepo port.InboundMessageRepository
		unifiedRepo port.UnifiedMessageRepository
		eventRepo   port.RouterEventRepository
		dedup       port.DuplicateGuard = service.NewMemoryDuplicateGuard()
	)
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

		if migErr := pgpkg.RunMigrations(pgCfg.DSN(), "file://internal/router/infrastructure/postgres/migrations"); migErr != nil {
			logger.Warn("migration warning", "error", migErr)
		}

		inboundRepo = infraPG.NewInboundMessageRepo(pool)
		unifiedRepo = infraPG.NewUnifiedMessageRepo(pool)
		eventRepo = infraPG.NewRouterEventRepo(pool)
		dedup = infraPG.NewDedupStore(pool)
	}

	// Initialize Kafka producer.
	producer := kafkapkg.NewProducer(kafkapkg.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer producer.Close()

	// Domain services.
	validator, err := service.NewSchemaValidator()
	if err != nil {
		logger.Error("failed to compile schemas", "error", err)
		os.Exit(1)
	}
	defer validator.Close()

	publisher := messaging.NewKafkaOutcomePublisher(producer, messaging.TopicSet{
		Valid:            cfg.Topics.Valid,
		Exception:        cfg.Topics.Exception,
		RejectionRequest: cfg.Topics.RejectionRequest,
		Notification:     cfg.Topics.Notification,
	}, cfg.Kafka.PublishTimeout)

	processInbound := usecase.NewProcessInbound(
		service.NewPUIDGenerator(),
		validator,
		service.NewUniqueIDExtractor(),
		service.NewTransformer(),
		dedup,
		publisher,
		inboundRepo,
		unifiedRepo,
		eventRepo,
		routerMetrics,
		usecase.Topics{
			Valid:        cfg.Topics.Valid,
			Exception:    cfg.Topics.Exception,
			Notification: cfg.Topics.Notification,
		},
		logger,
	)

	// Inbound consumer.
	listener := messaging.NewInboundListener(processInbound, cfg.ChannelID, logger)
	consumer := kafkapkg.NewConsumer(kafkapkg.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Topics.Inbound, listener.Handle, logger)
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
	logger.Info("fast-router stopped")
}

// Package app собирает витрину: хранилище, сервисы, HTTP API, админский gRPC и фоновые воркеры.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/service/favorites"
	grpcsvc "github.com/vladislavdragonenkov/storefront/internal/service/grpc"
	"github.com/vladislavdragonenkov/storefront/internal/service/idempotency"
	"github.com/vladislavdragonenkov/storefront/internal/service/ledger"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
	"github.com/vladislavdragonenkov/storefront/internal/service/review"
	"github.com/vladislavdragonenkov/storefront/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

const (
	healthWatchInterval = 15 * time.Second
	healthCheckTimeout  = 3 * time.Second
)

// Run поднимает все компоненты и блокируется до отмены ctx или падения одного из серверов.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	priceMode, err := ledger.ParsePriceValidation(cfg.PriceValidation)
	if err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(cfg.AuthSecret, cfg.AuthLeeway)
	if err != nil {
		return err
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	var seed Seed
	if cfg.SeedFile != "" {
		if seed, err = LoadSeedFile(cfg.SeedFile); err != nil {
			return err
		}
		if _, err := applySeed(ctx, seed, deps.users, deps.products, logger); err != nil {
			return err
		}
	}

	catalogRef, redisClient := initCatalog(cfg, deps.products, logger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	forgetSeededProducts(ctx, catalogRef, seed, logger)

	storefrontMetrics := metrics.NewStorefrontMetrics()

	ledgerSvc := ledger.NewService(deps.orders, catalogRef,
		ledger.WithTimeline(deps.timelineRepo),
		ledger.WithOutbox(deps.outboxRepo),
		ledger.WithPriceValidation(priceMode),
		ledger.WithMetrics(storefrontMetrics),
		ledger.WithLogger(logger.WithField("service", "ledger")),
	)

	apiHandler := httpapi.NewHandler(httpapi.Deps{
		Cart: cart.NewService(deps.users, catalogRef,
			cart.WithMetrics(storefrontMetrics),
			cart.WithLogger(logger.WithField("service", "cart")),
		),
		Favorites: favorites.NewService(deps.users, catalogRef,
			favorites.WithMetrics(storefrontMetrics),
			favorites.WithLogger(logger.WithField("service", "favorites")),
		),
		Ledger: ledgerSvc,
		Reviews: review.NewService(deps.products,
			review.WithMetrics(storefrontMetrics),
			review.WithLogger(logger.WithField("service", "review")),
		),
		Verifier:       verifier,
		Idempotency:    deps.idempotencyRepo,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Metrics:        storefrontMetrics,
		Logger:         logger.WithField("layer", "http"),
	})

	producer, kafkaErr := initKafkaProducer(cfg.KafkaBrokers, cfg.KafkaClientID, logger)
	defer closeKafka(producer, logger)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.SetTimeout(healthCheckTimeout)
	if deps.store != nil {
		healthHandler.Register("postgres", true, deps.store.Ping)
	}
	if redisClient != nil {
		healthHandler.Register("redis", false, pingRedis(redisClient))
	}
	if kafkaErr != nil {
		healthHandler.Register("kafka", false, func(context.Context) error { return kafkaErr })
	}
	healthHandler.Register("outbox", false, func(ctx context.Context) error {
		_, err := deps.outboxRepo.Stats(ctx)
		return err
	})

	grpcServer, grpcHealth := newGRPCServer(ledgerSvc, logger)

	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpLis.Close()
		return fmt.Errorf("listen grpc: %w", err)
	}
	opsLis, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		_ = httpLis.Close()
		_ = grpcLis.Close()
		return fmt.Errorf("listen metrics: %w", err)
	}

	apiSrv := &http.Server{Handler: apiHandler, ReadHeaderTimeout: 10 * time.Second}
	opsSrv := &http.Server{Handler: newOpsMux(healthHandler), ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("HTTP API слушает %s", httpLis.Addr())
		return serveHTTP(apiSrv, httpLis)
	})
	g.Go(func() error {
		logger.Infof("метрики и health checks слушают %s", opsLis.Addr())
		return serveHTTP(opsSrv, opsLis)
	})
	g.Go(func() error {
		logger.Infof("gRPC admin слушает %s", grpcLis.Addr())
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	if producer != nil {
		worker := outbox.NewWorker(deps.outboxRepo, kafka.NewOutboxPublisher(producer, cfg.KafkaTopic),
			outbox.WithDLQPublisher(kafka.NewOutboxPublisher(producer, cfg.KafkaDLQTopic)),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
			outbox.WithBatchSize(cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
			outbox.WithMetrics(storefrontMetrics),
			outbox.WithLogger(logger.WithField("worker", "outbox")),
		)
		g.Go(func() error {
			worker.Run(gctx)
			return nil
		})
	} else {
		logger.Info("kafka is not configured, outbox events stay in storage")
	}

	g.Go(func() error {
		healthHandler.Watch(gctx, healthWatchInterval, func(status healthcheck.Status) {
			serving := healthpb.HealthCheckResponse_SERVING
			if status == healthcheck.StatusUnhealthy {
				serving = healthpb.HealthCheckResponse_NOT_SERVING
			}
			logger.WithField("health", status).Info("сводный статус зависимостей изменился")
			grpcHealth.SetServingStatus(grpcsvc.ServiceName, serving)
		})
		return nil
	})

	cleanup := idempotency.NewCleanupWorker(deps.idempotencyRepo,
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
		idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
		idempotency.WithMetrics(storefrontMetrics),
		idempotency.WithLogger(logger.WithField("worker", "idempotency-cleanup")),
	)
	g.Go(func() error {
		cleanup.Run(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("получен сигнал остановки, останавливаем серверы")
		grpcHealth.Shutdown()
		stopGRPC(grpcServer, cfg.ShutdownTimeout, logger)
		shutdownHTTP(apiSrv, cfg.ShutdownTimeout, logger)
		shutdownHTTP(opsSrv, cfg.ShutdownTimeout, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// newGRPCServer собирает админский gRPC-сервер с метриками, reflection и grpc.health.v1.
func newGRPCServer(ledgerSvc grpcsvc.Ledger, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*promgrpc.ServerMetrics); ok2 {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	grpcsvc.Register(server, grpcsvc.NewOrderAdmin(ledgerSvc, logger.WithField("layer", "grpc")))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(grpcsvc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(server)
	grpcMetrics.InitializeMetrics(server)
	return server, healthServer
}

// newOpsMux отдаёт /metrics и health-эндпоинты.
func newOpsMux(healthHandler *healthcheck.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	return mux
}

func serveHTTP(srv *http.Server, lis net.Listener) error {
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func stopGRPC(server *grpc.Server, timeout time.Duration, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		server.Stop()
	}
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, timeout time.Duration, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/service/catalog"
	"github.com/vladislavdragonenkov/orders/internal/service/enrichment"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
	"github.com/vladislavdragonenkov/orders/internal/service/users"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
	transport "github.com/vladislavdragonenkov/orders/internal/transport/http"
	"github.com/vladislavdragonenkov/orders/internal/version"
)

// Допустимые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr            string
	MetricsAddr         string
	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	UserDirectoryURL    string
	CatalogURL          string
	ResolverTimeout     time.Duration
}

// DefaultConfig возвращает конфигурацию для локальной разработки:
// in-memory хранилище и соседние порты для внешних сервисов.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		UserDirectoryURL:    "http://localhost:8081",
		CatalogURL:          "http://localhost:8082",
		ResolverTimeout:     3 * time.Second,
	}
}

// Run собирает зависимости и держит оба HTTP-сервера до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	repo, healthHandler, closeStorage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	usersClient := users.NewClient(cfg.UserDirectoryURL, cfg.ResolverTimeout, logger.WithField("layer", "users"))
	catalogClient := catalog.NewClient(cfg.CatalogURL, cfg.ResolverTimeout, logger.WithField("layer", "catalog"))
	engine := enrichment.NewEngine(usersClient, catalogClient, logger.WithField("layer", "enrichment"))

	// Kafka опционален: без брокеров события просто не публикуются.
	var kafkaProducer *kafka.Producer
	var svc *orders.Service
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := kafka.NewProducer(strings.Split(brokers, ","))
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			logger.Info("kafka producer initialized")
		}
	}
	serviceLogger := logger.WithField("layer", "orders")
	if kafkaProducer != nil {
		svc = orders.NewServiceWithEvents(repo, usersClient, catalogClient, engine, kafkaProducer, serviceLogger)
	} else {
		svc = orders.NewService(repo, usersClient, catalogClient, engine, serviceLogger)
	}

	handler := transport.NewHandler(svc, logger.WithField("layer", "http"))
	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler.Router()}

	healthHandler.RegisterChecker("user_directory", upstreamChecker("user_directory", cfg.UserDirectoryURL))
	healthHandler.RegisterChecker("catalog", upstreamChecker("catalog", cfg.CatalogURL))
	metricsSrv := startMetricsServer(cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		closeKafka(kafkaProducer, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		closeKafka(kafkaProducer, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// initStorage выбирает реализацию репозитория и настраивает проверку здоровья.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (domain.OrderRepository, *healthcheck.Handler, func(), error) {
	healthHandler := healthcheck.NewHandler(version.GetVersion())

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("using in-memory order storage")
		return memory.NewOrderRepository(), healthHandler, func() {}, nil

	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, nil, nil, errors.New("postgres dsn is required for postgres storage driver")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, nil, nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
		logger.Info("using postgres order storage")
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}
		return postgres.NewOrderRepository(store), healthHandler, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

// upstreamChecker считает upstream живым, если он отвечает хоть каким-нибудь
// HTTP-статусом. Недоступность деградирует /healthz, но не роняет сервис:
// чтение продолжает работать на заглушках.
func upstreamChecker(name, baseURL string) healthcheck.Checker {
	client := &http.Client{Timeout: 2 * time.Second}
	return healthcheck.NewSimpleChecker(name, func() error {
		resp, err := client.Get(baseURL + "/health")
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		return nil
	})
}

// startMetricsServer запускает операционный HTTP-сервер: метрики и health checks.
func startMetricsServer(addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return
	}
	logger.Info("kafka producer closed")
}

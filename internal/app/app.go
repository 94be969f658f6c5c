package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DRSN-tech/storefront/internal/catalog"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/domain"
	catalogInfra "github.com/DRSN-tech/storefront/internal/infrastructure/catalog"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/metrics"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	"github.com/DRSN-tech/storefront/internal/session"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout = 10 * time.Second
	forcedTimeout   = 3 * time.Second
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	closer   *closer.Closer
	loader   *catalog.Loader
	sessions *session.Registry
	metrics  *metrics.Metrics
	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
}

// NewApp собирает зависимости. Внешние сервисы (Redis, Kafka) подключаются
// только если заданы в конфигурации; отсутствие Redis при старте не фатально.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	c := closer.NewCloser(forcedTimeout)

	source, err := newCatalogSource(cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sessions := session.NewRegistry(cfg.Order.OverlayTransition, cfg.Session.IdleTimeout, nil, log)
	m := metrics.New(sessions.Len)

	loaderOpts := []catalog.Option{
		catalog.WithOnLoaded(func(products []domain.Product) { m.CatalogLoaded(len(products)) }),
	}
	if cache := newCatalogCache(cfg, log, c); cache != nil {
		loaderOpts = append(loaderOpts, catalog.WithCache(cache))
	}
	loader := catalog.NewLoader(source, cfg.Catalog.FetchTimeout, log, loaderOpts...)

	var publisher usecase.OrderPublisher
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(log, cfg.Kafka)
		c.Add("kafka producer", func(context.Context) error { return producer.Close() })
		publisher = producer
		log.Infof("Order events enabled: topic %s, brokers %s", cfg.Kafka.Topic, strings.Join(cfg.Kafka.Brokers, ","))
	}

	storefrontUC := usecase.NewStorefrontUC(loader, sessions, publisher, m, log, cfg.Kafka.WriteTimeout)
	c.Add("order events", storefrontUC.WaitForPublications)

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r := chi.NewRouter()
	v1Http.NewRouter(r, renderer, cfg.Http.StaticDir, log).Init(storefrontUC, m.Handler())

	return &App{
		cfg:      cfg,
		logger:   log,
		closer:   c,
		loader:   loader,
		sessions: sessions,
		metrics:  m,
		httpSrv:  v1Http.NewServer(r, cfg.Http),
		grpcSrv:  v1Grpc.NewGRPCServer(cfg.Grpc, log),
	}, nil
}

// Run запускает загрузку каталога и серверы, затем ждёт сигнала или ошибки.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.closer.AddFunc("background tasks", cancel)

	a.loader.Start()
	go a.watchCatalog(ctx)
	a.grpcSrv.WatchCatalog(ctx, a.loader.Done())
	go a.sessions.Run(ctx, a.cfg.Session.SweepInterval)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()
	a.closer.Add("gRPC server", a.grpcSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- err
		}
	}()
	a.closer.Add("HTTP server", a.httpSrv.Stop)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "Shutdown finished with errors")
		appErr = errors.Join(appErr, err)
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}

func (a *App) watchCatalog(ctx context.Context) {
	select {
	case <-a.loader.Done():
	case <-ctx.Done():
		return
	}

	if err := a.loader.Err(); err != nil {
		a.metrics.CatalogFailed()
		return
	}
	a.logger.Infof("Catalog ready: %d products", a.loader.Catalog().Len())
}

// newCatalogSource выбирает источник по схеме CATALOG_SOURCE.
func newCatalogSource(cfg *config.Config) (catalog.Source, error) {
	src := cfg.Catalog.Source

	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return catalogInfra.NewHTTPSource(src, &http.Client{}), nil
	case strings.HasPrefix(src, "s3://"):
		bucket, key, err := s3Repo.ParseS3URI(src)
		if err != nil {
			return nil, err
		}

		mc, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			return nil, err
		}

		return s3Repo.NewCatalogRepo(mc, bucket, key), nil
	default:
		return catalogInfra.NewFileSource(strings.TrimPrefix(src, "file://")), nil
	}
}

// newCatalogCache подключает Redis. Недоступный Redis отключает кэш.
func newCatalogCache(cfg *config.Config, log logger.Logger, c *closer.Closer) catalog.Cache {
	if !cfg.Redis.Enabled() {
		return nil
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		log.Warnf("Redis unavailable, catalog cache disabled: %v", err)
		_ = redisClient.Close()
		return nil
	}
	c.Add("redis", func(context.Context) error { return redisClient.Close() })

	return redis.NewCatalogCacheRepo(redisClient, cfg.Redis, log)
}

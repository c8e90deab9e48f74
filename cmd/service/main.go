package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	application "logistics/internal/app"
	"logistics/internal/entities"
	"logistics/internal/handlers/grpc/reporting"
	"logistics/internal/handlers/rest/analytics_get"
	"logistics/internal/handlers/rest/deliveries_get"
	"logistics/internal/handlers/rest/delivery_complete_post"
	"logistics/internal/handlers/rest/delivery_delete"
	"logistics/internal/handlers/rest/delivery_get"
	"logistics/internal/handlers/rest/delivery_patch"
	"logistics/internal/handlers/rest/delivery_post"
	"logistics/internal/handlers/rest/delivery_put"
	"logistics/internal/handlers/rest/healthcheck_head"
	"logistics/internal/handlers/rest/ping_get"
	"logistics/internal/handlers/rest/reference_get"
	"logistics/internal/handlers/rest/references_get"
	"logistics/internal/pkg/config"
	"logistics/internal/pkg/dotenv"
	"logistics/internal/pkg/grpcserver"
	"logistics/internal/pkg/middlewares/auth"
	"logistics/internal/pkg/middlewares/graceful_shutdown"
	"logistics/internal/pkg/middlewares/metrics"
	"logistics/internal/pkg/middlewares/rate_limiter"
	"logistics/internal/pkg/middlewares/timeout"
	"logistics/internal/pkg/migrations"
	"logistics/internal/pkg/postgres"
	"logistics/pkg/logger"
	"logistics/pkg/logger/zap_adapter"
	"logistics/pkg/token_bucket"
)

// referenceRoutes - URL-сегменты справочников.
var referenceRoutes = map[string]entities.ReferenceKind{
	"transport-models": entities.KindTransportModel,
	"package-types":    entities.KindPackageType,
	"services":         entities.KindDeliveryService,
	"statuses":         entities.KindDeliveryStatus,
	"cargo-types":      entities.KindCargoType,
}

func main() {
	// .env читается до логгера, потому что уровень логирования приходит из окружения.
	_, statErr := os.Stat(".env")
	if statErr == nil {
		if err := dotenv.Load(); err != nil {
			stdlog.Fatalf("failed to load .env file: %v", err)
		}
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(logger.NewField("app", "logistics-service"))

	mainLog.Info("starting logistics service")
	if statErr != nil {
		mainLog.Warn("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdownCtx и ongoingCtx намеренно наследуются от context.Background()
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrationsAuto {
		if err := migrations.Up(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting", logger.NewField("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	grpcServer := grpcserver.New(log, businessApp.Verifier,
		reporting.New(log, businessApp.ServiceDelivery, businessApp.ServiceAnalytics),
	)

	grpcServerErr := make(chan error, 1)
	go func() {
		defer close(grpcServerErr)

		listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPC.Port))
		if err != nil {
			grpcServerErr <- err
			return
		}

		runLog.Info("grpc server starting", logger.NewField("port", cfg.GRPC.Port))
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			grpcServerErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting", logger.NewField("port", cfg.Server.PprofPort))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr:
		return fmt.Errorf("grpc server: %w", err)
	case err := <-pprofServerErr: // nil-канал при выключенном pprof никогда не готов
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	grpcStopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(grpcStopped)
	}()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		}
	}

	select {
	case <-grpcStopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	db healthcheck_head.Probe,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log, "logistics")).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware(log, app.Verifier))

	api.Handle("/deliveries", deliveries_get.New(log, app.ServiceDelivery)).Methods(http.MethodGet)
	api.Handle("/deliveries", delivery_post.New(log, app.ServiceDelivery)).Methods(http.MethodPost)
	api.Handle("/deliveries/{id}", delivery_get.New(log, app.ServiceDelivery)).Methods(http.MethodGet)
	api.Handle("/deliveries/{id}", delivery_put.New(log, app.ServiceDelivery)).Methods(http.MethodPut)
	api.Handle("/deliveries/{id}", delivery_patch.New(log, app.ServiceDelivery)).Methods(http.MethodPatch)
	api.Handle("/deliveries/{id}", delivery_delete.New(log, app.ServiceDelivery)).Methods(http.MethodDelete)
	api.Handle("/deliveries/{id}/complete", delivery_complete_post.New(log, app.ServiceDelivery)).Methods(http.MethodPost)

	api.Handle("/analytics", analytics_get.New(log, app.ServiceAnalytics)).Methods(http.MethodGet)

	for segment, kind := range referenceRoutes {
		api.Handle("/"+segment, references_get.New(log, app.ServiceCatalog, kind)).Methods(http.MethodGet)
		api.Handle("/"+segment+"/{id}", reference_get.New(log, app.ServiceCatalog, kind)).Methods(http.MethodGet)
	}

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

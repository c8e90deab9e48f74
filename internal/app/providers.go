package app

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"logistics/internal/handlers/grpc/reporting"
	"logistics/internal/handlers/rest/analytics_get"
	"logistics/internal/handlers/rest/deliveries_get"
	"logistics/internal/handlers/rest/delivery_complete_post"
	"logistics/internal/handlers/rest/delivery_delete"
	"logistics/internal/handlers/rest/delivery_get"
	"logistics/internal/handlers/rest/delivery_patch"
	"logistics/internal/handlers/rest/delivery_post"
	"logistics/internal/handlers/rest/delivery_put"
	"logistics/internal/handlers/rest/reference_get"
	"logistics/internal/handlers/rest/references_get"
	"logistics/internal/handlers/tasks/delivery_metrics"
	"logistics/internal/pkg/config"
	"logistics/internal/pkg/metrics"
	"logistics/internal/pkg/middlewares/auth"
	deliveryRepo "logistics/internal/repository/delivery"
	referenceRepo "logistics/internal/repository/reference"
	analyticsService "logistics/internal/service/analytics"
	catalogService "logistics/internal/service/catalog"
	deliveryService "logistics/internal/service/delivery"
	"logistics/pkg/background"
	"logistics/pkg/logger"
	"logistics/pkg/querier"
	"logistics/pkg/tx"
)

type Application struct {
	ServiceDelivery   ServiceDelivery
	ServiceAnalytics  ServiceAnalytics
	ServiceCatalog    ServiceCatalog
	Verifier          *auth.Verifier
	BackgroundWorkers *background.Worker
}

type ServiceDelivery interface {
	deliveries_get.Service
	delivery_get.Service
	delivery_post.Service
	delivery_put.Service
	delivery_patch.Service
	delivery_delete.Service
	delivery_complete_post.Service
	reporting.DeliveryService
}

type ServiceAnalytics interface {
	analytics_get.Service
	reporting.AnalyticsService
}

type ServiceCatalog interface {
	references_get.Service
	reference_get.Service
}

type KafkaWorkerApp struct {
	DeliveryService *deliveryService.Delivery
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideReportLocation(cfg *config.Config) (*time.Location, error) {
	return cfg.Reporting.Location()
}

func provideDeliveryRepository(querier *querier.Querier, loc *time.Location) *deliveryRepo.Repository {
	return deliveryRepo.New(querier, loc)
}

func provideReferenceRepository(querier *querier.Querier) *referenceRepo.Repository {
	return referenceRepo.New(querier)
}

func provideServiceDelivery(
	repository deliveryService.Repository,
	txManager deliveryService.TxManager,
	cfg *config.Config,
) *deliveryService.Delivery {
	return deliveryService.New(repository, txManager, deliveryService.PaginationConfig{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	})
}

func provideServiceAnalytics(repository analyticsService.Repository, loc *time.Location) *analyticsService.Analytics {
	return analyticsService.New(repository, loc)
}

func provideServiceCatalog(repository catalogService.Repository, cfg *config.Config) *catalogService.Catalog {
	return catalogService.New(repository, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)
}

func provideVerifier(cfg *config.Config) *auth.Verifier {
	return auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
}

func provideDeliveryMetricsTask(
	log logger.Logger,
	repository delivery_metrics.Repository,
	cfg *config.Config,
) *delivery_metrics.DeliveryMetrics {
	return delivery_metrics.New(log, repository, cfg.Tasks.DeliveryMetricsInterval)
}

func provideSystemCollector(cfg *config.Config) *metrics.SystemCollector {
	return metrics.NewSystemCollector(cfg.Tasks.SystemMetricsInterval)
}

func provideTaskList(
	deliveryMetricsTask *delivery_metrics.DeliveryMetrics,
	systemCollector *metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		deliveryMetricsTask,
		systemCollector,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks...)
}

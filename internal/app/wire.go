//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"logistics/internal/handlers/tasks/delivery_metrics"
	"logistics/internal/pkg/config"
	deliveryRepo "logistics/internal/repository/delivery"
	referenceRepo "logistics/internal/repository/reference"
	analyticsService "logistics/internal/service/analytics"
	catalogService "logistics/internal/service/catalog"
	deliveryService "logistics/internal/service/delivery"
	"logistics/pkg/logger"
	"logistics/pkg/tx"
)

// InitializeApplication для HTTP/gRPC сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideReportLocation,

		provideDeliveryRepository,
		provideReferenceRepository,

		provideServiceDelivery,
		provideServiceAnalytics,
		provideServiceCatalog,
		provideVerifier,

		provideDeliveryMetricsTask,
		provideSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceAnalytics), new(*analyticsService.Analytics)),
		wire.Bind(new(ServiceCatalog), new(*catalogService.Catalog)),

		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(analyticsService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(catalogService.Repository), new(*referenceRepo.Repository)),
		wire.Bind(new(delivery_metrics.Repository), new(*deliveryRepo.Repository)),

		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-delivery-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideReportLocation,

		provideDeliveryRepository,
		provideServiceDelivery,

		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

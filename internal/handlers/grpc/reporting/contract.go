//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reporting_test
package reporting

import (
	"context"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/internal/service/filters"
	"logistics/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type DeliveryService interface {
	ListDeliveries(ctx context.Context, params filters.Params) (*entities.DeliveryPage, error)
	CompleteDelivery(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
}

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, params filters.Params) (*entities.AnalyticsReport, error)
}

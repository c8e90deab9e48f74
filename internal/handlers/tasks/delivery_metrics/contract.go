//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_metrics_test
package delivery_metrics

import (
	"context"

	"logistics/internal/entities"
	"logistics/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Repository interface {
	StatusTotals(ctx context.Context) ([]entities.StatusTotal, error)
}

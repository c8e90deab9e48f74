//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_status_changed_test
package delivery_status_changed

import (
	"context"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CompleteDelivery(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
}

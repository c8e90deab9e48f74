//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=references_get_test
package references_get

import (
	"context"

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
	ListReferences(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error)
}

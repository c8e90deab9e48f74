//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=catalog_test
package catalog

import (
	"context"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

type Repository interface {
	List(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error)
	GetByID(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*entities.Reference, error)
}

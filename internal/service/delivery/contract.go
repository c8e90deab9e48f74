//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

type Repository interface {
	List(ctx context.Context, filter entities.DeliveryFilter, page entities.Pagination) ([]entities.DeliverySummary, error)
	Count(ctx context.Context, filter entities.DeliveryFilter) (int64, error)

	GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
	Create(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error)
	Update(ctx context.Context, id uuid.UUID, modify entities.DeliveryModify) error
	Delete(ctx context.Context, id uuid.UUID) error

	LockByID(ctx context.Context, id uuid.UUID) error
	GetStatusByCode(ctx context.Context, code entities.StatusCode) (*entities.DeliveryStatus, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, statusID uuid.UUID) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

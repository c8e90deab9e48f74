package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/internal/service/filters"
)

type Delivery struct {
	repository Repository
	txManager  TxManager
	pagination PaginationConfig
}

func New(repository Repository, txManager TxManager, pagination PaginationConfig) *Delivery {
	return &Delivery{
		repository: repository,
		txManager:  txManager,
		pagination: pagination.withDefaults(),
	}
}

// ListDeliveries возвращает страницу доставок под фильтром. Страница и общее
// количество читаются из одного снимка, поэтому count согласован с results.
func (d *Delivery) ListDeliveries(ctx context.Context, params filters.Params) (*entities.DeliveryPage, error) {
	filter := filters.ComposeListing(params)
	page := d.pagination.paginate(params)

	result := entities.DeliveryPage{
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	err := d.txManager.DoSnapshot(ctx, func(ctx context.Context) error {
		total, err := d.repository.Count(ctx, filter)
		if err != nil {
			return fmt.Errorf("count deliveries: %w", err)
		}
		result.Total = total

		if page.Offset() >= uint64(total) {
			result.Items = []entities.DeliverySummary{}
			return nil
		}

		items, err := d.repository.List(ctx, filter, page)
		if err != nil {
			return fmt.Errorf("list deliveries: %w", err)
		}
		result.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (d *Delivery) GetDelivery(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return delivery, nil
}

func (d *Delivery) CreateDelivery(ctx context.Context, modify entities.DeliveryModify) (*entities.Delivery, error) {
	if !hasRequiredFields(modify) {
		return nil, ErrMissingRequiredFields
	}
	if err := validateModify(modify); err != nil {
		return nil, err
	}

	delivery := entities.Delivery{
		TransportModelID:   *modify.TransportModelID,
		TransportNumber:    *modify.TransportNumber,
		DepartureAt:        *modify.DepartureAt,
		ArrivalAt:          *modify.ArrivalAt,
		Distance:           *modify.Distance,
		DepartureAddress:   nonEmpty(modify.DepartureAddress),
		ArrivalAddress:     nonEmpty(modify.ArrivalAddress),
		MediaRef:           nonEmpty(modify.MediaRef),
		PackageTypeID:      *modify.PackageTypeID,
		StatusID:           *modify.StatusID,
		TechnicalCondition: entities.DefaultTechnicalCondition,
		ServiceIDs:         []uuid.UUID{},
	}
	if modify.TechnicalCondition != nil {
		delivery.TechnicalCondition = *modify.TechnicalCondition
	}
	if modify.CargoTypeID != nil && *modify.CargoTypeID != uuid.Nil {
		delivery.CargoTypeID = modify.CargoTypeID
	}
	if modify.ServiceIDs != nil {
		delivery.ServiceIDs = uniqueIDs(*modify.ServiceIDs)
	}

	var created *entities.Delivery
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = d.repository.Create(ctx, delivery)
		if err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReplaceDelivery - полное обновление: не переданные необязательные поля сбрасываются.
func (d *Delivery) ReplaceDelivery(ctx context.Context, id uuid.UUID, modify entities.DeliveryModify) (*entities.Delivery, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}
	if !hasRequiredFields(modify) {
		return nil, ErrMissingRequiredFields
	}

	empty := ""
	noCargo := uuid.Nil
	if modify.DepartureAddress == nil {
		modify.DepartureAddress = &empty
	}
	if modify.ArrivalAddress == nil {
		modify.ArrivalAddress = &empty
	}
	if modify.MediaRef == nil {
		modify.MediaRef = &empty
	}
	if modify.CargoTypeID == nil {
		modify.CargoTypeID = &noCargo
	}
	if modify.TechnicalCondition == nil {
		condition := entities.DefaultTechnicalCondition
		modify.TechnicalCondition = &condition
	}
	if modify.ServiceIDs == nil {
		modify.ServiceIDs = &[]uuid.UUID{}
	}

	return d.update(ctx, id, modify)
}

// UpdateDelivery - частичное обновление заданных полей.
func (d *Delivery) UpdateDelivery(ctx context.Context, id uuid.UUID, modify entities.DeliveryModify) (*entities.Delivery, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}
	if modify.Empty() {
		return nil, ErrNoFieldsToUpdate
	}

	return d.update(ctx, id, modify)
}

func (d *Delivery) update(ctx context.Context, id uuid.UUID, modify entities.DeliveryModify) (*entities.Delivery, error) {
	if err := validateModify(modify); err != nil {
		return nil, err
	}
	if modify.ServiceIDs != nil {
		ids := uniqueIDs(*modify.ServiceIDs)
		modify.ServiceIDs = &ids
	}

	var updated *entities.Delivery
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		if err := d.repository.Update(ctx, id, modify); err != nil {
			return fmt.Errorf("update delivery: %w", err)
		}

		var err error
		updated, err = d.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get updated delivery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (d *Delivery) DeleteDelivery(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidDeliveryID
	}

	if err := d.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}

// CompleteDelivery переводит доставку в статус "completed" из любого статуса.
// Повторный вызов оставляет то же состояние. Строка доставки блокируется на
// время транзакции, так что параллельные переходы не теряют друг друга.
func (d *Delivery) CompleteDelivery(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}

	var completed *entities.Delivery
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		if err := d.repository.LockByID(ctx, id); err != nil {
			return fmt.Errorf("lock delivery: %w", err)
		}

		status, err := d.repository.GetStatusByCode(ctx, entities.StatusCompleted)
		if err != nil {
			if errors.Is(err, ErrStatusNotFound) {
				return ErrCompletedStatusNotConfigured
			}
			return fmt.Errorf("get completed status: %w", err)
		}

		if err := d.repository.UpdateStatus(ctx, id, status.ID); err != nil {
			return fmt.Errorf("update delivery status: %w", err)
		}

		completed, err = d.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get completed delivery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

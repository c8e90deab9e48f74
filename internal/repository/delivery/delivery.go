package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/delivery"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier  Querier
	compiler compiler
}

// New. loc - зона, в которой сравниваются календарные даты прибытия.
func New(querier Querier, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{
		querier:  querier,
		compiler: compiler{tz: loc.String()},
	}
}

const detailQuery = `
	SELECT
		d.id, d.transport_model_id, d.transport_number,
		d.departure_datetime, d.arrival_datetime, d.distance,
		d.departure_address, d.arrival_address, d.media_file,
		d.package_type_id, d.status_id, d.cargo_type_id, d.technical_condition,
		ARRAY(
			SELECT l.service_id::text FROM delivery_service_links l
			WHERE l.delivery_id = d.id
			ORDER BY l.service_id
		) AS service_ids,
		d.created_at, d.updated_at
	FROM deliveries d
	WHERE d.id = $1`

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error) {
	var (
		deliveryDB DeliveryDB
		serviceIDs []string
	)
	err := r.querier.QueryRow(ctx, detailQuery, id.String()).Scan(
		&deliveryDB.ID,
		&deliveryDB.TransportModelID,
		&deliveryDB.TransportNumber,
		&deliveryDB.DepartureAt,
		&deliveryDB.ArrivalAt,
		&deliveryDB.Distance,
		&deliveryDB.DepartureAddress,
		&deliveryDB.ArrivalAddress,
		&deliveryDB.MediaFile,
		&deliveryDB.PackageTypeID,
		&deliveryDB.StatusID,
		&deliveryDB.CargoTypeID,
		&deliveryDB.TechnicalCondition,
		&serviceIDs,
		&deliveryDB.CreatedAt,
		&deliveryDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository getbyid error: %w", err)
	}

	deliveryDB.ServiceIDs = make([]uuid.UUID, 0, len(serviceIDs))
	for _, raw := range serviceIDs {
		serviceID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery repository service id %q: %w", raw, err)
		}
		deliveryDB.ServiceIDs = append(deliveryDB.ServiceIDs, serviceID)
	}

	return ToDomain(&deliveryDB), nil
}

func (r *Repository) Create(ctx context.Context, d entities.Delivery) (*entities.Delivery, error) {
	query := `
		INSERT INTO deliveries (
			transport_model_id, transport_number, departure_datetime, arrival_datetime,
			distance, departure_address, arrival_address, media_file,
			package_type_id, status_id, cargo_type_id, technical_condition
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	var cargoTypeID any
	if d.CargoTypeID != nil {
		cargoTypeID = d.CargoTypeID.String()
	}

	created := d
	err := r.querier.QueryRow(
		ctx,
		query,
		d.TransportModelID.String(),
		d.TransportNumber,
		d.DepartureAt,
		d.ArrivalAt,
		d.Distance,
		d.DepartureAddress,
		d.ArrivalAddress,
		d.MediaRef,
		d.PackageTypeID.String(),
		d.StatusID.String(),
		cargoTypeID,
		d.TechnicalCondition.String(),
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, delivery.ErrReferenceNotFound
		}
		if repository.IsConstraintViolation(err) {
			return nil, fmt.Errorf("%w: %w", delivery.ErrConstraintViolation, err)
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	if err := r.insertServiceLinks(ctx, created.ID, d.ServiceIDs); err != nil {
		return nil, err
	}
	if created.ServiceIDs == nil {
		created.ServiceIDs = []uuid.UUID{}
	}

	return &created, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, m entities.DeliveryModify) error {
	builder := qb.Update("deliveries")

	// опциональные поля
	if m.TransportModelID != nil {
		builder = builder.Set("transport_model_id", m.TransportModelID.String())
	}
	if m.TransportNumber != nil {
		builder = builder.Set("transport_number", *m.TransportNumber)
	}
	if m.DepartureAt != nil {
		builder = builder.Set("departure_datetime", *m.DepartureAt)
	}
	if m.ArrivalAt != nil {
		builder = builder.Set("arrival_datetime", *m.ArrivalAt)
	}
	if m.Distance != nil {
		builder = builder.Set("distance", *m.Distance)
	}
	if m.DepartureAddress != nil {
		builder = builder.Set("departure_address", nullableText(m.DepartureAddress))
	}
	if m.ArrivalAddress != nil {
		builder = builder.Set("arrival_address", nullableText(m.ArrivalAddress))
	}
	if m.MediaRef != nil {
		builder = builder.Set("media_file", nullableText(m.MediaRef))
	}
	if m.PackageTypeID != nil {
		builder = builder.Set("package_type_id", m.PackageTypeID.String())
	}
	if m.StatusID != nil {
		builder = builder.Set("status_id", m.StatusID.String())
	}
	if m.CargoTypeID != nil {
		builder = builder.Set("cargo_type_id", nullableID(m.CargoTypeID))
	}
	if m.TechnicalCondition != nil {
		builder = builder.Set("technical_condition", m.TechnicalCondition.String())
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id.String()})

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return delivery.ErrReferenceNotFound
		}
		if repository.IsConstraintViolation(err) {
			return fmt.Errorf("%w: %w", delivery.ErrConstraintViolation, err)
		}
		return fmt.Errorf("unexpected delivery repository update error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return delivery.ErrDeliveryNotFound
	}

	if m.ServiceIDs == nil {
		return nil
	}

	// набор услуг заменяется целиком
	_, err = r.querier.Exec(ctx, `DELETE FROM delivery_service_links WHERE delivery_id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("unexpected delivery repository clear services error: %w", err)
	}
	return r.insertServiceLinks(ctx, id, *m.ServiceIDs)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("unexpected delivery repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return delivery.ErrDeliveryNotFound
	}
	return nil
}

func (r *Repository) insertServiceLinks(ctx context.Context, deliveryID uuid.UUID, serviceIDs []uuid.UUID) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO delivery_service_links (delivery_id, service_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`

	_, err := r.querier.Exec(ctx, query, deliveryID.String(), idStrings(serviceIDs))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return delivery.ErrReferenceNotFound
		}
		return fmt.Errorf("unexpected delivery repository insert services error: %w", err)
	}
	return nil
}

package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/repository"
	"logistics/internal/service/delivery"
)

// LockByID берёт блокировку строки до конца транзакции.
// Параллельные завершения одной доставки выполняются последовательно.
func (r *Repository) LockByID(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	err := r.querier.QueryRow(ctx, `SELECT id FROM deliveries WHERE id = $1 FOR UPDATE`, id.String()).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return delivery.ErrDeliveryNotFound
		}
		return fmt.Errorf("unexpected delivery repository lock error: %w", err)
	}
	return nil
}

// GetStatusByCode. Код статуса не уникален, выбирается первый по имени.
func (r *Repository) GetStatusByCode(ctx context.Context, code entities.StatusCode) (*entities.DeliveryStatus, error) {
	query := `
		SELECT id, name, code, color
		FROM delivery_statuses
		WHERE code = $1
		ORDER BY name, id
		LIMIT 1`

	var (
		status  entities.DeliveryStatus
		rawCode string
	)
	err := r.querier.QueryRow(ctx, query, code.String()).Scan(&status.ID, &status.Name, &rawCode, &status.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrStatusNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get status error: %w", err)
	}
	status.Code = entities.StatusCode(rawCode)

	return &status, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, statusID uuid.UUID) error {
	query := `
		UPDATE deliveries
		SET status_id = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.querier.Exec(ctx, query, statusID.String(), id.String())
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return delivery.ErrStatusNotFound
		}
		return fmt.Errorf("unexpected delivery repository update status error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return delivery.ErrDeliveryNotFound
	}
	return nil
}

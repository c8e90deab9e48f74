package reference

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"logistics/internal/entities"
	"logistics/internal/service/catalog"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tables сопоставляет вид справочника с таблицей. Имя таблицы в запрос
// попадает только отсюда.
var tables = map[entities.ReferenceKind]string{
	entities.KindTransportModel:  "transport_models",
	entities.KindPackageType:     "package_types",
	entities.KindDeliveryService: "delivery_services",
	entities.KindDeliveryStatus:  "delivery_statuses",
	entities.KindCargoType:       "cargo_types",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) List(ctx context.Context, kind entities.ReferenceKind) ([]entities.Reference, error) {
	builder, err := selectReferences(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.OrderBy("name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected reference repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected reference repository list error: %w", err)
	}
	defer rows.Close()

	references := make([]entities.Reference, 0)
	for rows.Next() {
		var ref ReferenceDB
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Description, &ref.Code, &ref.Color, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		references = append(references, ToDomain(kind, &ref))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected reference repository list rows error: %w", err)
	}

	return references, nil
}

func (r *Repository) GetByID(ctx context.Context, kind entities.ReferenceKind, id uuid.UUID) (*entities.Reference, error) {
	builder, err := selectReferences(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected reference repository getbyid error: %w", err)
	}

	var ref ReferenceDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(&ref.ID, &ref.Name, &ref.Description, &ref.Code, &ref.Color, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("unexpected reference repository getbyid error: %w", err)
	}

	result := ToDomain(kind, &ref)
	return &result, nil
}

// selectReferences выравнивает колонки: у справочников кроме статусов
// code и color отсутствуют и читаются пустыми строками.
func selectReferences(kind entities.ReferenceKind) (sq.SelectBuilder, error) {
	table, ok := tables[kind]
	if !ok {
		return sq.SelectBuilder{}, catalog.ErrUnknownKind
	}

	code, color := "''", "''"
	if kind == entities.KindDeliveryStatus {
		code, color = "code", "color"
	}

	return qb.
		Select("id", "name", "description", code, color, "created_at").
		From(table), nil
}

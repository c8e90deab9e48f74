package delivery

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"logistics/internal/entities"
)

func (r *Repository) List(
	ctx context.Context,
	filter entities.DeliveryFilter,
	page entities.Pagination,
) ([]entities.DeliverySummary, error) {
	builder := qb.
		Select(
			"d.id",
			"tm.name",
			"d.transport_number",
			"d.departure_datetime",
			"d.arrival_datetime",
			"d.distance",
			"d.departure_address",
			"d.arrival_address",
			"pt.name",
			"s.name",
			"s.color",
			"d.technical_condition",
			"ARRAY(SELECT ds.name FROM delivery_service_links l "+
				"JOIN delivery_services ds ON ds.id = l.service_id "+
				"WHERE l.delivery_id = d.id ORDER BY ds.name) AS service_names",
			"d.created_at",
		).
		From("deliveries d").
		Join("transport_models tm ON tm.id = d.transport_model_id").
		Join("package_types pt ON pt.id = d.package_type_id").
		Join("delivery_statuses s ON s.id = d.status_id")

	builder, err := r.applyFilter(builder, filter.Predicates)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	builder = builder.OrderBy(orderBy(filter.Ordering)...)
	if page.PageSize > 0 {
		builder = builder.Limit(page.PageSize).Offset(page.Offset())
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	defer rows.Close()

	summaries := make([]entities.DeliverySummary, 0, page.PageSize)
	for rows.Next() {
		var s DeliverySummaryDB
		if err := rows.Scan(
			&s.ID,
			&s.TransportModelName,
			&s.TransportNumber,
			&s.DepartureAt,
			&s.ArrivalAt,
			&s.Distance,
			&s.DepartureAddress,
			&s.ArrivalAddress,
			&s.PackageTypeName,
			&s.StatusName,
			&s.StatusColor,
			&s.TechnicalCondition,
			&s.ServiceNames,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delivery summary: %w", err)
		}
		summaries = append(summaries, SummaryToDomain(&s))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list rows error: %w", err)
	}

	return summaries, nil
}

func (r *Repository) Count(ctx context.Context, filter entities.DeliveryFilter) (int64, error) {
	builder, err := r.applyFilter(qb.Select("COUNT(*)").From("deliveries d"), filter.Predicates)
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository count error: %w", err)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery repository count error: %w", err)
	}

	var total int64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("unexpected delivery repository count error: %w", err)
	}
	return total, nil
}

func (r *Repository) applyFilter(builder sq.SelectBuilder, predicates []entities.Predicate) (sq.SelectBuilder, error) {
	if len(predicates) == 0 {
		return builder, nil
	}

	where, err := r.compiler.where(predicates)
	if err != nil {
		return builder, err
	}
	return builder.Where(where), nil
}

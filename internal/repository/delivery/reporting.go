package delivery

import (
	"context"
	"fmt"

	"logistics/internal/entities"
)

// ScanAnalyticsRecords отдаёт по одной записи на доставку, прошедшую фильтр.
// Выборка идёт одним запросом, поэтому fn видит согласованный снимок.
func (r *Repository) ScanAnalyticsRecords(
	ctx context.Context,
	filter entities.DeliveryFilter,
	fn func(entities.AnalyticsRecord) error,
) error {
	builder := qb.
		Select(
			"d.id",
			"d.arrival_datetime",
			"d.distance",
			"s.name",
			"s.color",
			"tm.name",
			"ARRAY(SELECT ds.name FROM delivery_service_links l "+
				"JOIN delivery_services ds ON ds.id = l.service_id "+
				"WHERE l.delivery_id = d.id) AS service_names",
		).
		From("deliveries d").
		Join("transport_models tm ON tm.id = d.transport_model_id").
		Join("delivery_statuses s ON s.id = d.status_id")

	builder, err := r.applyFilter(builder, filter.Predicates)
	if err != nil {
		return fmt.Errorf("unexpected delivery repository analytics error: %w", err)
	}

	query, args, err := builder.OrderBy("d.id ASC").ToSql()
	if err != nil {
		return fmt.Errorf("unexpected delivery repository analytics error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected delivery repository analytics error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec AnalyticsRecordDB
		if err := rows.Scan(
			&rec.ID,
			&rec.ArrivalAt,
			&rec.Distance,
			&rec.StatusName,
			&rec.StatusColor,
			&rec.TransportModelName,
			&rec.ServiceNames,
		); err != nil {
			return fmt.Errorf("failed to scan analytics record: %w", err)
		}

		if err := fn(AnalyticsRecordToDomain(&rec)); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("unexpected delivery repository analytics rows error: %w", err)
	}
	return nil
}

// StatusTotals - сводка по каждому коду статуса, включая статусы без доставок.
func (r *Repository) StatusTotals(ctx context.Context) ([]entities.StatusTotal, error) {
	query := `
		SELECT s.code, COUNT(d.id), COALESCE(SUM(d.distance), 0)
		FROM delivery_statuses s
		LEFT JOIN deliveries d ON d.status_id = s.id
		GROUP BY s.code
		ORDER BY s.code`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository status totals error: %w", err)
	}
	defer rows.Close()

	var totals []entities.StatusTotal
	for rows.Next() {
		var (
			code  string
			total entities.StatusTotal
		)
		if err := rows.Scan(&code, &total.Count, &total.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan status total: %w", err)
		}
		total.Code = entities.StatusCode(code)
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery repository status totals rows error: %w", err)
	}
	return totals, nil
}

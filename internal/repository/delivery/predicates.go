package delivery

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"logistics/internal/entities"
)

const dateLayout = "2006-01-02"

// orderColumns - белый список колонок сортировки.
var orderColumns = map[entities.OrderField]string{
	entities.OrderByDeparture: "d.departure_datetime",
	entities.OrderByArrival:   "d.arrival_datetime",
	entities.OrderByDistance:  "d.distance",
	entities.OrderByCreatedAt: "d.created_at",
}

var searchColumns = []string{"d.transport_number", "d.departure_address", "d.arrival_address"}

// compiler переводит предикаты в условия WHERE над алиасом d (deliveries).
type compiler struct {
	// tz - зона, в которой берётся календарная дата прибытия
	tz string
}

func (c compiler) where(predicates []entities.Predicate) (sq.And, error) {
	conds := make(sq.And, 0, len(predicates))
	for _, p := range predicates {
		cond, err := c.compile(p)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func (c compiler) compile(p entities.Predicate) (sq.Sqlizer, error) {
	switch p := p.(type) {
	case entities.StatusIs:
		return sq.Eq{"d.status_id": p.ID.String()}, nil
	case entities.TransportModelIs:
		return sq.Eq{"d.transport_model_id": p.ID.String()}, nil
	case entities.PackageTypeIs:
		return sq.Eq{"d.package_type_id": p.ID.String()}, nil
	case entities.TechnicalConditionIs:
		return sq.Eq{"d.technical_condition": p.Value.String()}, nil
	case entities.ArrivalDateFrom:
		return sq.Expr("(d.arrival_datetime AT TIME ZONE ?)::date >= ?::date", c.tz, p.Date.Format(dateLayout)), nil
	case entities.ArrivalDateTo:
		return sq.Expr("(d.arrival_datetime AT TIME ZONE ?)::date <= ?::date", c.tz, p.Date.Format(dateLayout)), nil
	case entities.ServicesAny:
		// EXISTS вместо JOIN: доставка с несколькими подходящими услугами не дублируется
		return sq.Expr(`EXISTS (
			SELECT 1 FROM delivery_service_links l
			WHERE l.delivery_id = d.id AND l.service_id = ANY(?::uuid[])
		)`, idStrings(p.IDs)), nil
	case entities.CargoTypesAny:
		return sq.Expr("d.cargo_type_id = ANY(?::uuid[])", idStrings(p.IDs)), nil
	case entities.DurationAtLeast:
		return sq.Expr("d.arrival_datetime >= d.departure_datetime + make_interval(secs => ?)", seconds(p.Offset)), nil
	case entities.DurationAtMost:
		return sq.Expr("d.arrival_datetime <= d.departure_datetime + make_interval(secs => ?)", seconds(p.Offset)), nil
	case entities.TextSearch:
		pattern := "%" + escapeLike(p.Term) + "%"
		or := make(sq.Or, 0, len(searchColumns))
		for _, col := range searchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		return or, nil
	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

// orderBy всегда добавляет d.id, чтобы страницы были стабильными при равных ключах.
func orderBy(ordering []entities.Ordering) []string {
	if len(ordering) == 0 {
		ordering = entities.DefaultOrdering()
	}

	clauses := make([]string, 0, len(ordering)+1)
	for _, o := range ordering {
		col, ok := orderColumns[o.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}
		clauses = append(clauses, col+" "+dir)
	}
	return append(clauses, "d.id ASC")
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

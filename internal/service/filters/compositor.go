package filters

import (
	"strings"
	"time"
	"unicode"

	"logistics/internal/entities"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type rule struct {
	key   string
	build func(raw string) (entities.Predicate, bool)
}

// listingRules обходятся в фиксированном порядке, чтобы состав предикатов
// не зависел от порядка ключей в карте.
var listingRules = []rule{
	{ParamStatus, idPredicate(func(id uuid.UUID) entities.Predicate { return entities.StatusIs{ID: id} })},
	{ParamTransportModel, idPredicate(func(id uuid.UUID) entities.Predicate { return entities.TransportModelIs{ID: id} })},
	{ParamPackageType, idPredicate(func(id uuid.UUID) entities.Predicate { return entities.PackageTypeIs{ID: id} })},
	{ParamTechnicalCondition, technicalCondition},
	{ParamStartDate, datePredicate(func(d time.Time) entities.Predicate { return entities.ArrivalDateFrom{Date: d} })},
	{ParamEndDate, datePredicate(func(d time.Time) entities.Predicate { return entities.ArrivalDateTo{Date: d} })},
	{ParamServices, idListPredicate(func(ids []uuid.UUID) entities.Predicate { return entities.ServicesAny{IDs: ids} })},
	{ParamMinDuration, MinDuration},
	{ParamMaxDuration, MaxDuration},
}

var analyticsRules = append(append([]rule{}, listingRules...),
	rule{ParamCargoTypes, idListPredicate(func(ids []uuid.UUID) entities.Predicate { return entities.CargoTypesAny{IDs: ids} })},
)

// ComposeListing собирает фильтр списка доставок. Некорректные значения
// отбрасываются по одному и никогда не превращаются в ошибку запроса.
func ComposeListing(p Params) entities.DeliveryFilter {
	return entities.DeliveryFilter{
		Predicates: compose(p, listingRules),
		Ordering:   parseOrdering(p),
	}
}

// ComposeAnalytics - фильтры списка плюс cargo_types. Сортировка для отчёта не нужна.
func ComposeAnalytics(p Params) entities.DeliveryFilter {
	return entities.DeliveryFilter{
		Predicates: compose(p, analyticsRules),
	}
}

func compose(p Params, rules []rule) []entities.Predicate {
	predicates := make([]entities.Predicate, 0, len(rules))
	for _, r := range rules {
		raw, ok := p.lookup(r.key)
		if !ok {
			continue
		}
		if pred, ok := r.build(raw); ok {
			predicates = append(predicates, pred)
		}
	}
	return append(predicates, searchTerms(p)...)
}

func idPredicate(wrap func(uuid.UUID) entities.Predicate) func(string) (entities.Predicate, bool) {
	return func(raw string) (entities.Predicate, bool) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, false
		}
		return wrap(id), true
	}
}

// idListPredicate разбирает список через запятую. Битые элементы пропускаются,
// дубликаты схлопываются; если не осталось ни одного id, фильтр опускается.
func idListPredicate(wrap func([]uuid.UUID) entities.Predicate) func(string) (entities.Predicate, bool) {
	return func(raw string) (entities.Predicate, bool) {
		parts := strings.Split(raw, ",")
		seen := make(map[uuid.UUID]struct{}, len(parts))
		ids := make([]uuid.UUID, 0, len(parts))
		for _, part := range parts {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return nil, false
		}
		return wrap(ids), true
	}
}

func datePredicate(wrap func(time.Time) entities.Predicate) func(string) (entities.Predicate, bool) {
	return func(raw string) (entities.Predicate, bool) {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, false
		}
		return wrap(d), true
	}
}

func technicalCondition(raw string) (entities.Predicate, bool) {
	return entities.TechnicalConditionIs{Value: entities.TechnicalCondition(raw)}, true
}

// searchTerms делит строку поиска по пробелам и запятым. Каждое слово должно
// найтись хотя бы в одном из полей.
func searchTerms(p Params) []entities.Predicate {
	raw, ok := p.lookup(ParamSearch)
	if !ok {
		return nil
	}
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == 0
	})
	terms := make([]entities.Predicate, 0, len(words))
	for _, w := range words {
		terms = append(terms, entities.TextSearch{Term: w})
	}
	return terms
}

// parseOrdering принимает список полей через запятую; "-" в начале даёт убывание.
// Поля вне белого списка игнорируются, пустой результат означает сортировку по умолчанию.
func parseOrdering(p Params) []entities.Ordering {
	raw, ok := p.lookup(ParamOrdering)
	if !ok {
		return entities.DefaultOrdering()
	}

	var out []entities.Ordering
	seen := make(map[entities.OrderField]struct{})
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		desc := strings.HasPrefix(term, "-")
		field := entities.OrderField(strings.TrimPrefix(term, "-"))
		if !field.Valid() {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, entities.Ordering{Field: field, Descending: desc})
	}
	if len(out) == 0 {
		return entities.DefaultOrdering()
	}
	return out
}

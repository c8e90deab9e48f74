package analytics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

type dailyAcc struct {
	count    int64
	distance float64
}

type statusKey struct {
	name  string
	color string
}

// Aggregator считает все группировки за один проход по записям.
// Повторная запись той же доставки не учитывается второй раз,
// но её услуги добавляются к уже учтённым.
type Aggregator struct {
	loc *time.Location

	seen      map[uuid.UUID]struct{}
	daily     map[time.Time]*dailyAcc
	statuses  map[statusKey]int64
	transport map[string]int64
	services  map[string]map[uuid.UUID]struct{}

	total    int64
	distance float64
}

func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		loc:       loc,
		seen:      make(map[uuid.UUID]struct{}),
		daily:     make(map[time.Time]*dailyAcc),
		statuses:  make(map[statusKey]int64),
		transport: make(map[string]int64),
		services:  make(map[string]map[uuid.UUID]struct{}),
	}
}

func (a *Aggregator) Add(rec entities.AnalyticsRecord) error {
	if math.IsNaN(rec.Distance) || math.IsInf(rec.Distance, 0) {
		return fmt.Errorf("%w: delivery %s has distance %v", ErrInvalidRecord, rec.DeliveryID, rec.Distance)
	}

	for _, name := range rec.ServiceNames {
		group, ok := a.services[name]
		if !ok {
			group = make(map[uuid.UUID]struct{})
			a.services[name] = group
		}
		group[rec.DeliveryID] = struct{}{}
	}

	if _, dup := a.seen[rec.DeliveryID]; dup {
		return nil
	}
	a.seen[rec.DeliveryID] = struct{}{}

	a.total++
	a.distance += rec.Distance

	day := dateOf(rec.ArrivalAt, a.loc)
	acc, ok := a.daily[day]
	if !ok {
		acc = &dailyAcc{}
		a.daily[day] = acc
	}
	acc.count++
	acc.distance += rec.Distance

	a.statuses[statusKey{name: rec.StatusName, color: rec.StatusColor}]++
	a.transport[rec.TransportModelName]++

	return nil
}

// Report собирает итог. На пустом наборе все списки пустые, итоги нулевые.
func (a *Aggregator) Report() *entities.AnalyticsReport {
	report := &entities.AnalyticsReport{
		DailyStats:      make([]entities.DailyStat, 0, len(a.daily)),
		StatusStats:     make([]entities.StatusStat, 0, len(a.statuses)),
		TransportStats:  namedCounts(a.transport),
		ServiceStats:    make([]entities.NamedCount, 0, len(a.services)),
		TotalDeliveries: a.total,
		TotalDistance:   a.distance,
	}

	for day, acc := range a.daily {
		report.DailyStats = append(report.DailyStats, entities.DailyStat{
			Date:          day,
			Count:         acc.count,
			TotalDistance: acc.distance,
			AvgDistance:   acc.distance / float64(acc.count),
		})
	}
	slices.SortFunc(report.DailyStats, func(x, y entities.DailyStat) int {
		return x.Date.Compare(y.Date)
	})

	for key, count := range a.statuses {
		report.StatusStats = append(report.StatusStats, entities.StatusStat{
			Name:  key.name,
			Color: key.color,
			Count: count,
		})
	}
	slices.SortFunc(report.StatusStats, func(x, y entities.StatusStat) int {
		return cmp.Or(
			cmp.Compare(y.Count, x.Count),
			cmp.Compare(x.Name, y.Name),
			cmp.Compare(x.Color, y.Color),
		)
	})

	for name, deliveries := range a.services {
		report.ServiceStats = append(report.ServiceStats, entities.NamedCount{
			Name:  name,
			Count: int64(len(deliveries)),
		})
	}
	sortByCountDesc(report.ServiceStats)

	return report
}

func namedCounts(m map[string]int64) []entities.NamedCount {
	out := make([]entities.NamedCount, 0, len(m))
	for name, count := range m {
		out = append(out, entities.NamedCount{Name: name, Count: count})
	}
	sortByCountDesc(out)
	return out
}

// sortByCountDesc: при равном количестве порядок по имени, чтобы ответ был детерминированным.
func sortByCountDesc(s []entities.NamedCount) {
	slices.SortFunc(s, func(x, y entities.NamedCount) int {
		return cmp.Or(cmp.Compare(y.Count, x.Count), cmp.Compare(x.Name, y.Name))
	})
}

// dateOf - календарная дата момента t в зоне loc, нормализованная к полуночи UTC.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package dto

import (
	"logistics/internal/entities"
)

const dateLayout = "2006-01-02"

type DailyStat struct {
	Date          string  `json:"date"`
	Count         int64   `json:"count"`
	TotalDistance float64 `json:"total_distance"`
	AvgDistance   float64 `json:"avg_distance"`
}

type StatusStat struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type AnalyticsReport struct {
	DailyStats      []DailyStat  `json:"daily_stats"`
	StatusStats     []StatusStat `json:"status_stats"`
	TransportStats  []NamedCount `json:"transport_stats"`
	ServiceStats    []NamedCount `json:"service_stats"`
	TotalDeliveries int64        `json:"total_deliveries"`
	TotalDistance   float64      `json:"total_distance"`
}

func FromReport(r *entities.AnalyticsReport) AnalyticsReport {
	out := AnalyticsReport{
		DailyStats:      make([]DailyStat, len(r.DailyStats)),
		StatusStats:     make([]StatusStat, len(r.StatusStats)),
		TransportStats:  fromNamedCounts(r.TransportStats),
		ServiceStats:    fromNamedCounts(r.ServiceStats),
		TotalDeliveries: r.TotalDeliveries,
		TotalDistance:   r.TotalDistance,
	}

	for i, d := range r.DailyStats {
		out.DailyStats[i] = DailyStat{
			Date:          d.Date.Format(dateLayout),
			Count:         d.Count,
			TotalDistance: d.TotalDistance,
			AvgDistance:   d.AvgDistance,
		}
	}
	for i, s := range r.StatusStats {
		out.StatusStats[i] = StatusStat{Name: s.Name, Color: s.Color, Count: s.Count}
	}

	return out
}

func fromNamedCounts(in []entities.NamedCount) []NamedCount {
	out := make([]NamedCount, len(in))
	for i, c := range in {
		out[i] = NamedCount{Name: c.Name, Count: c.Count}
	}
	return out
}

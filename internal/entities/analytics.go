package entities

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsRecord - минимальный срез доставки, нужный агрегатору.
type AnalyticsRecord struct {
	DeliveryID         uuid.UUID
	ArrivalAt          time.Time
	Distance           float64
	StatusName         string
	StatusColor        string
	TransportModelName string
	ServiceNames       []string
}

type DailyStat struct {
	Date          time.Time
	Count         int64
	TotalDistance float64
	AvgDistance   float64
}

type StatusStat struct {
	Name  string
	Color string
	Count int64
}

type NamedCount struct {
	Name  string
	Count int64
}

type AnalyticsReport struct {
	DailyStats      []DailyStat
	StatusStats     []StatusStat
	TransportStats  []NamedCount
	ServiceStats    []NamedCount
	TotalDeliveries int64
	TotalDistance   float64
}

// StatusTotal - число и суммарная дистанция доставок в одном статусе.
type StatusTotal struct {
	Code     StatusCode
	Count    int64
	Distance float64
}

package delivery

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryDB struct {
	ID                 uuid.UUID
	TransportModelID   uuid.UUID
	TransportNumber    string
	DepartureAt        time.Time
	ArrivalAt          time.Time
	Distance           float64
	DepartureAddress   *string
	ArrivalAddress     *string
	MediaFile          *string
	PackageTypeID      uuid.UUID
	StatusID           uuid.UUID
	CargoTypeID        *uuid.UUID
	TechnicalCondition string
	ServiceIDs         []uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type DeliverySummaryDB struct {
	ID                 uuid.UUID
	TransportModelName string
	TransportNumber    string
	DepartureAt        time.Time
	ArrivalAt          time.Time
	Distance           float64
	DepartureAddress   *string
	ArrivalAddress     *string
	PackageTypeName    string
	StatusName         string
	StatusColor        string
	TechnicalCondition string
	ServiceNames       []string
	CreatedAt          time.Time
}

type AnalyticsRecordDB struct {
	ID                 uuid.UUID
	ArrivalAt          time.Time
	Distance           float64
	StatusName         string
	StatusColor        string
	TransportModelName string
	ServiceNames       []string
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

type TechnicalCondition string

const (
	ConditionGood TechnicalCondition = "good"
	ConditionBad  TechnicalCondition = "bad"
)

const DefaultTechnicalCondition = ConditionGood

func (c TechnicalCondition) String() string {
	return string(c)
}

func (c TechnicalCondition) Valid() bool {
	return c == ConditionGood || c == ConditionBad
}

// Delivery - одна отслеживаемая перевозка.
// Порядок прибытия и отправления не проверяется: длительность может быть отрицательной.
type Delivery struct {
	ID                 uuid.UUID
	TransportModelID   uuid.UUID
	TransportNumber    string
	DepartureAt        time.Time
	ArrivalAt          time.Time
	Distance           float64
	DepartureAddress   *string
	ArrivalAddress     *string
	MediaRef           *string
	PackageTypeID      uuid.UUID
	StatusID           uuid.UUID
	CargoTypeID        *uuid.UUID
	TechnicalCondition TechnicalCondition
	ServiceIDs         []uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Duration - длительность в часах, nil если одна из меток времени не задана.
func (d Delivery) Duration() *float64 {
	return durationHours(d.DepartureAt, d.ArrivalAt)
}

// DeliverySummary - строка списка доставок с уже разрешёнными названиями справочников.
type DeliverySummary struct {
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
	TechnicalCondition TechnicalCondition
	ServiceNames       []string
	CreatedAt          time.Time
}

func (s DeliverySummary) Duration() *float64 {
	return durationHours(s.DepartureAt, s.ArrivalAt)
}

// DeliveryModify - частичное обновление. nil означает "не менять".
// Для nullable полей пустая строка и uuid.Nil сбрасывают значение в NULL.
type DeliveryModify struct {
	TransportModelID   *uuid.UUID
	TransportNumber    *string
	DepartureAt        *time.Time
	ArrivalAt          *time.Time
	Distance           *float64
	DepartureAddress   *string
	ArrivalAddress     *string
	MediaRef           *string
	PackageTypeID      *uuid.UUID
	StatusID           *uuid.UUID
	CargoTypeID        *uuid.UUID
	TechnicalCondition *TechnicalCondition
	ServiceIDs         *[]uuid.UUID
}

// Empty сообщает, что ни одно поле не задано.
func (m DeliveryModify) Empty() bool {
	return m.TransportModelID == nil &&
		m.TransportNumber == nil &&
		m.DepartureAt == nil &&
		m.ArrivalAt == nil &&
		m.Distance == nil &&
		m.DepartureAddress == nil &&
		m.ArrivalAddress == nil &&
		m.MediaRef == nil &&
		m.PackageTypeID == nil &&
		m.StatusID == nil &&
		m.CargoTypeID == nil &&
		m.TechnicalCondition == nil &&
		m.ServiceIDs == nil
}

// DeliveryPage - страница списка и общее число записей под фильтром.
type DeliveryPage struct {
	Items    []DeliverySummary
	Total    int64
	Page     uint64
	PageSize uint64
}

func durationHours(departure, arrival time.Time) *float64 {
	if departure.IsZero() || arrival.IsZero() {
		return nil
	}
	hours := arrival.Sub(departure).Hours()
	return &hours
}

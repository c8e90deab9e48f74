package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Predicate - один распознанный фильтр со своим типизированным аргументом.
// Набор вариантов закрыт: реализовать интерфейс можно только в этом пакете.
type Predicate interface {
	predicate()
}

type StatusIs struct{ ID uuid.UUID }

type TransportModelIs struct{ ID uuid.UUID }

type PackageTypeIs struct{ ID uuid.UUID }

// TechnicalConditionIs не валидирует значение: неизвестное состояние просто ничего не находит.
type TechnicalConditionIs struct{ Value TechnicalCondition }

// ArrivalDateFrom и ArrivalDateTo ограничивают календарную дату прибытия включительно.
type ArrivalDateFrom struct{ Date time.Time }

type ArrivalDateTo struct{ Date time.Time }

// ServicesAny - доставка несёт хотя бы одну из услуг.
type ServicesAny struct{ IDs []uuid.UUID }

type CargoTypesAny struct{ IDs []uuid.UUID }

// DurationAtLeast: arrival >= departure + Offset.
type DurationAtLeast struct{ Offset time.Duration }

// DurationAtMost: arrival <= departure + Offset.
type DurationAtMost struct{ Offset time.Duration }

// TextSearch - регистронезависимая подстрока в номере транспорта или адресах.
type TextSearch struct{ Term string }

func (StatusIs) predicate()             {}
func (TransportModelIs) predicate()     {}
func (PackageTypeIs) predicate()        {}
func (TechnicalConditionIs) predicate() {}
func (ArrivalDateFrom) predicate()      {}
func (ArrivalDateTo) predicate()        {}
func (ServicesAny) predicate()          {}
func (CargoTypesAny) predicate()        {}
func (DurationAtLeast) predicate()      {}
func (DurationAtMost) predicate()       {}
func (TextSearch) predicate()           {}

type OrderField string

const (
	OrderByDeparture OrderField = "departure_datetime"
	OrderByArrival   OrderField = "arrival_datetime"
	OrderByDistance  OrderField = "distance"
	OrderByCreatedAt OrderField = "created_at"
)

func (f OrderField) Valid() bool {
	switch f {
	case OrderByDeparture, OrderByArrival, OrderByDistance, OrderByCreatedAt:
		return true
	}
	return false
}

type Ordering struct {
	Field      OrderField
	Descending bool
}

// DefaultOrdering - свежие отправления первыми.
func DefaultOrdering() []Ordering {
	return []Ordering{{Field: OrderByDeparture, Descending: true}}
}

// DeliveryFilter - конъюнкция предикатов плюс сортировка.
// Пустой Ordering означает сортировку по умолчанию.
type DeliveryFilter struct {
	Predicates []Predicate
	Ordering   []Ordering
}

type Pagination struct {
	Page     uint64
	PageSize uint64
}

// Offset насыщается на MaxInt64: OFFSET в Postgres - bigint, а страница
// за пределами выборки всё равно пустая.
func (p Pagination) Offset() uint64 {
	if p.Page <= 1 || p.PageSize == 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.PageSize {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.PageSize
}

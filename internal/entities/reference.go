package entities

import (
	"time"

	"github.com/google/uuid"
)

type ReferenceKind string

const (
	KindTransportModel  ReferenceKind = "transport_models"
	KindPackageType     ReferenceKind = "package_types"
	KindDeliveryService ReferenceKind = "delivery_services"
	KindDeliveryStatus  ReferenceKind = "delivery_statuses"
	KindCargoType       ReferenceKind = "cargo_types"
)

func (k ReferenceKind) String() string {
	return string(k)
}

func (k ReferenceKind) Valid() bool {
	switch k {
	case KindTransportModel, KindPackageType, KindDeliveryService, KindDeliveryStatus, KindCargoType:
		return true
	}
	return false
}

type StatusCode string

const (
	StatusPending   StatusCode = "pending"
	StatusCompleted StatusCode = "completed"
)

func (c StatusCode) String() string {
	return string(c)
}

const DefaultStatusColor = "#FFFF00"

// Reference - строка любого справочника. Code и Color заполнены только у статусов.
type Reference struct {
	Kind        ReferenceKind
	ID          uuid.UUID
	Name        string
	Description *string
	Code        StatusCode
	Color       string
	CreatedAt   time.Time
}

// DeliveryStatus - статус доставки, единственный справочник с семантикой перехода.
type DeliveryStatus struct {
	ID    uuid.UUID
	Name  string
	Code  StatusCode
	Color string
}

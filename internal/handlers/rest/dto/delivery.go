package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

var ErrInvalidPayload = errors.New("invalid request payload")

type DeliverySummary struct {
	ID                 uuid.UUID `json:"id"`
	TransportModelName string    `json:"transport_model_name"`
	TransportNumber    string    `json:"transport_number"`
	DepartureAt        time.Time `json:"departure_datetime"`
	ArrivalAt          time.Time `json:"arrival_datetime"`
	Distance           float64   `json:"distance"`
	DepartureAddress   *string   `json:"departure_address"`
	ArrivalAddress     *string   `json:"arrival_address"`
	PackageTypeName    string    `json:"package_type_name"`
	StatusName         string    `json:"status_name"`
	StatusColor        string    `json:"status_color"`
	TechnicalCondition string    `json:"technical_condition"`
	Duration           *float64  `json:"duration"`
	Services           []string  `json:"services"`
	CreatedAt          time.Time `json:"created_at"`
}

type DeliveryPage struct {
	Count    int64             `json:"count"`
	Page     uint64            `json:"page"`
	PageSize uint64            `json:"page_size"`
	Results  []DeliverySummary `json:"results"`
}

type Delivery struct {
	ID                 uuid.UUID   `json:"id"`
	TransportModel     uuid.UUID   `json:"transport_model"`
	TransportNumber    string      `json:"transport_number"`
	DepartureAt        time.Time   `json:"departure_datetime"`
	ArrivalAt          time.Time   `json:"arrival_datetime"`
	Distance           float64     `json:"distance"`
	DepartureAddress   *string     `json:"departure_address"`
	ArrivalAddress     *string     `json:"arrival_address"`
	MediaFile          *string     `json:"media_file"`
	PackageType        uuid.UUID   `json:"package_type"`
	Status             uuid.UUID   `json:"status"`
	CargoType          *uuid.UUID  `json:"cargo_type"`
	TechnicalCondition string      `json:"technical_condition"`
	Services           []uuid.UUID `json:"services"`
	Duration           *float64    `json:"duration"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// DeliveryWrite - тело POST/PUT/PATCH. Отсутствующее поле означает "не передано".
// Пустая строка в nullable полях сбрасывает значение.
type DeliveryWrite struct {
	TransportModel     *string    `json:"transport_model"`
	TransportNumber    *string    `json:"transport_number"`
	DepartureAt        *time.Time `json:"departure_datetime"`
	ArrivalAt          *time.Time `json:"arrival_datetime"`
	Distance           *float64   `json:"distance"`
	DepartureAddress   *string    `json:"departure_address"`
	ArrivalAddress     *string    `json:"arrival_address"`
	MediaFile          *string    `json:"media_file"`
	PackageType        *string    `json:"package_type"`
	Status             *string    `json:"status"`
	CargoType          *string    `json:"cargo_type"`
	TechnicalCondition *string    `json:"technical_condition"`
	Services           *[]string  `json:"services"`
}

func FromSummary(s entities.DeliverySummary) DeliverySummary {
	services := s.ServiceNames
	if services == nil {
		services = []string{}
	}

	return DeliverySummary{
		ID:                 s.ID,
		TransportModelName: s.TransportModelName,
		TransportNumber:    s.TransportNumber,
		DepartureAt:        s.DepartureAt,
		ArrivalAt:          s.ArrivalAt,
		Distance:           s.Distance,
		DepartureAddress:   s.DepartureAddress,
		ArrivalAddress:     s.ArrivalAddress,
		PackageTypeName:    s.PackageTypeName,
		StatusName:         s.StatusName,
		StatusColor:        s.StatusColor,
		TechnicalCondition: s.TechnicalCondition.String(),
		Duration:           s.Duration(),
		Services:           services,
		CreatedAt:          s.CreatedAt,
	}
}

func FromPage(p *entities.DeliveryPage) DeliveryPage {
	results := make([]DeliverySummary, len(p.Items))
	for i, item := range p.Items {
		results[i] = FromSummary(item)
	}

	return DeliveryPage{
		Count:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
		Results:  results,
	}
}

func FromDelivery(d *entities.Delivery) Delivery {
	services := d.ServiceIDs
	if services == nil {
		services = []uuid.UUID{}
	}

	return Delivery{
		ID:                 d.ID,
		TransportModel:     d.TransportModelID,
		TransportNumber:    d.TransportNumber,
		DepartureAt:        d.DepartureAt,
		ArrivalAt:          d.ArrivalAt,
		Distance:           d.Distance,
		DepartureAddress:   d.DepartureAddress,
		ArrivalAddress:     d.ArrivalAddress,
		MediaFile:          d.MediaRef,
		PackageType:        d.PackageTypeID,
		Status:             d.StatusID,
		CargoType:          d.CargoTypeID,
		TechnicalCondition: d.TechnicalCondition.String(),
		Services:           services,
		Duration:           d.Duration(),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ToModify переводит тело запроса в частичное обновление.
// Нераспознанный идентификатор - ошибка формата, а не "не найдено".
func (w DeliveryWrite) ToModify() (entities.DeliveryModify, error) {
	m := entities.DeliveryModify{
		TransportNumber:  w.TransportNumber,
		DepartureAt:      w.DepartureAt,
		ArrivalAt:        w.ArrivalAt,
		Distance:         w.Distance,
		DepartureAddress: w.DepartureAddress,
		ArrivalAddress:   w.ArrivalAddress,
		MediaRef:         w.MediaFile,
	}

	var err error
	if m.TransportModelID, err = parseRequiredID("transport_model", w.TransportModel); err != nil {
		return m, err
	}
	if m.PackageTypeID, err = parseRequiredID("package_type", w.PackageType); err != nil {
		return m, err
	}
	if m.StatusID, err = parseRequiredID("status", w.Status); err != nil {
		return m, err
	}
	if m.CargoTypeID, err = parseNullableID("cargo_type", w.CargoType); err != nil {
		return m, err
	}

	if w.TechnicalCondition != nil {
		condition := entities.TechnicalCondition(*w.TechnicalCondition)
		m.TechnicalCondition = &condition
	}

	if w.Services != nil {
		ids := make([]uuid.UUID, 0, len(*w.Services))
		for _, raw := range *w.Services {
			id, err := uuid.Parse(raw)
			if err != nil {
				return m, fmt.Errorf("%w: services: %q is not a valid id", ErrInvalidPayload, raw)
			}
			ids = append(ids, id)
		}
		m.ServiceIDs = &ids
	}

	return m, nil
}

func parseRequiredID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q is not a valid id", ErrInvalidPayload, field, *raw)
	}
	return &id, nil
}

// parseNullableID: пустая строка превращается в uuid.Nil, что означает сброс.
func parseNullableID(field string, raw *string) (*uuid.UUID, error) {
	if raw != nil && *raw == "" {
		nilID := uuid.Nil
		return &nilID, nil
	}
	return parseRequiredID(field, raw)
}

package delivery

import (
	"github.com/google/uuid"
	"logistics/internal/entities"
)

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}

	serviceIDs := d.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []uuid.UUID{}
	}

	return &entities.Delivery{
		ID:                 d.ID,
		TransportModelID:   d.TransportModelID,
		TransportNumber:    d.TransportNumber,
		DepartureAt:        d.DepartureAt,
		ArrivalAt:          d.ArrivalAt,
		Distance:           d.Distance,
		DepartureAddress:   d.DepartureAddress,
		ArrivalAddress:     d.ArrivalAddress,
		MediaRef:           d.MediaFile,
		PackageTypeID:      d.PackageTypeID,
		StatusID:           d.StatusID,
		CargoTypeID:        d.CargoTypeID,
		TechnicalCondition: entities.TechnicalCondition(d.TechnicalCondition),
		ServiceIDs:         serviceIDs,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func SummaryToDomain(s *DeliverySummaryDB) entities.DeliverySummary {
	names := s.ServiceNames
	if names == nil {
		names = []string{}
	}

	return entities.DeliverySummary{
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
		TechnicalCondition: entities.TechnicalCondition(s.TechnicalCondition),
		ServiceNames:       names,
		CreatedAt:          s.CreatedAt,
	}
}

func AnalyticsRecordToDomain(r *AnalyticsRecordDB) entities.AnalyticsRecord {
	return entities.AnalyticsRecord{
		DeliveryID:         r.ID,
		ArrivalAt:          r.ArrivalAt,
		Distance:           r.Distance,
		StatusName:         r.StatusName,
		StatusColor:        r.StatusColor,
		TransportModelName: r.TransportModelName,
		ServiceNames:       r.ServiceNames,
	}
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// nullableText: пустая строка в частичном обновлении означает NULL.
func nullableText(s *string) any {
	if *s == "" {
		return nil
	}
	return *s
}

func nullableID(id *uuid.UUID) any {
	if *id == uuid.Nil {
		return nil
	}
	return id.String()
}

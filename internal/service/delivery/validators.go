package delivery

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

// Длины совпадают с varchar колонок таблицы deliveries.
const (
	maxTransportNumberLen = 50
	maxTextLen            = 255
)

func isValidDistance(distance float64) bool {
	return distance >= 0 && !math.IsInf(distance, 1)
}

func isValidTransportNumber(number string) bool {
	return strings.TrimSpace(number) != ""
}

func fitsLen(s *string, limit int) bool {
	return s == nil || utf8.RuneCountInString(*s) <= limit
}

func isValidReference(id uuid.UUID) bool {
	return id != uuid.Nil
}

// validateModify проверяет только заданные поля.
func validateModify(m entities.DeliveryModify) error {
	if m.TransportNumber != nil && !isValidTransportNumber(*m.TransportNumber) {
		return ErrInvalidTransportNumber
	}
	if !fitsLen(m.TransportNumber, maxTransportNumberLen) {
		return ErrTransportNumberTooLong
	}
	if !fitsLen(m.DepartureAddress, maxTextLen) || !fitsLen(m.ArrivalAddress, maxTextLen) {
		return ErrAddressTooLong
	}
	if !fitsLen(m.MediaRef, maxTextLen) {
		return ErrMediaRefTooLong
	}
	if m.Distance != nil && !isValidDistance(*m.Distance) {
		return ErrInvalidDistance
	}
	if m.TechnicalCondition != nil && !m.TechnicalCondition.Valid() {
		return ErrInvalidTechnicalCondition
	}
	for _, id := range []*uuid.UUID{m.TransportModelID, m.PackageTypeID, m.StatusID} {
		if id != nil && !isValidReference(*id) {
			return ErrReferenceNotFound
		}
	}
	if m.ServiceIDs != nil {
		for _, id := range *m.ServiceIDs {
			if !isValidReference(id) {
				return ErrReferenceNotFound
			}
		}
	}
	return nil
}

func hasRequiredFields(m entities.DeliveryModify) bool {
	return m.TransportModelID != nil &&
		m.TransportNumber != nil &&
		m.DepartureAt != nil &&
		m.ArrivalAt != nil &&
		m.Distance != nil &&
		m.PackageTypeID != nil &&
		m.StatusID != nil
}

// uniqueIDs сохраняет порядок первого вхождения.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

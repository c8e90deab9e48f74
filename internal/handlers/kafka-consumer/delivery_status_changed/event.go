package delivery_status_changed

import "github.com/google/uuid"

// statusChangedEvent - сообщение о смене статуса доставки во внешней системе.
type statusChangedEvent struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	Status     string    `json:"status"`
}

package reference

import (
	"time"

	"github.com/google/uuid"
)

type ReferenceDB struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Code        string
	Color       string
	CreatedAt   time.Time
}

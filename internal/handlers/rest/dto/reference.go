package dto

import (
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

type Reference struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Code        string    `json:"code,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromReference(r entities.Reference) Reference {
	return Reference{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Code:        r.Code.String(),
		Color:       r.Color,
		CreatedAt:   r.CreatedAt,
	}
}

func FromReferences(in []entities.Reference) []Reference {
	out := make([]Reference, len(in))
	for i, r := range in {
		out[i] = FromReference(r)
	}
	return out
}

package reference

import (
	"logistics/internal/entities"
)

func ToDomain(kind entities.ReferenceKind, r *ReferenceDB) entities.Reference {
	return entities.Reference{
		Kind:        kind,
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Code:        entities.StatusCode(r.Code),
		Color:       r.Color,
		CreatedAt:   r.CreatedAt,
	}
}

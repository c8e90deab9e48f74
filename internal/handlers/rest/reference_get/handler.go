package reference_get

import (
	"errors"
	"net/http"

	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/service/catalog"
	"logistics/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	kind    entities.ReferenceKind
}

func New(log handlerLogger, service Service, kind entities.ReferenceKind) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "reference_get"),
		logger.NewField("kind", kind.String()),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
		kind:    kind,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := dto.PathID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	reference, err := h.service.GetReference(r.Context(), h.kind, id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrReferenceNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(logger.NewField("error", err)).Error("get reference")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromReference(*reference))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package references_get

import (
	"net/http"

	"logistics/internal/entities"
	"logistics/internal/handlers/rest/dto"
	"logistics/pkg/logger"
)

// Handler отдаёт весь справочник одного вида; на каждый вид свой экземпляр.
type Handler struct {
	log     handlerLogger
	service Service
	kind    entities.ReferenceKind
}

func New(log handlerLogger, service Service, kind entities.ReferenceKind) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "references_get"),
		logger.NewField("kind", kind.String()),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
		kind:    kind,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	references, err := h.service.ListReferences(r.Context(), h.kind)
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("list references")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromReferences(references))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package deliveries_get

import (
	"net/http"

	"logistics/internal/handlers/rest/dto"
	"logistics/internal/service/filters"
	"logistics/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "deliveries_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP. Нераспознанные фильтры и пагинация не дают 400: они просто не применяются.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListDeliveries(r.Context(), filters.ParamsFromQuery(r.URL.Query()))
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("list deliveries")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromPage(page))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

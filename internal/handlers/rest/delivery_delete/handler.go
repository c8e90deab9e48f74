package delivery_delete

import (
	"errors"
	"net/http"

	"logistics/internal/handlers/rest/dto"
	"logistics/internal/service/delivery"
	"logistics/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery_delete"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := dto.PathID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err := h.service.DeleteDelivery(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrDeliveryNotFound),
			errors.Is(err, delivery.ErrInvalidDeliveryID):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(logger.NewField("error", err)).Error("delete delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

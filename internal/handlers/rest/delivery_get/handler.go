package delivery_get

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
	handlerLog := log.With(logger.NewField("handler", "delivery_get"))

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

	deliveryEntity, err := h.service.GetDelivery(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrDeliveryNotFound),
			errors.Is(err, delivery.ErrInvalidDeliveryID):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(logger.NewField("error", err)).Error("get delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromDelivery(deliveryEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

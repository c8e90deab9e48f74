package delivery_complete_post

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
	handlerLog := log.With(logger.NewField("handler", "delivery_complete_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP переводит доставку в статус completed. Повторный вызов не ошибка.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := dto.PathID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	deliveryEntity, err := h.service.CompleteDelivery(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrDeliveryNotFound),
			errors.Is(err, delivery.ErrInvalidDeliveryID):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, delivery.ErrCompletedStatusNotConfigured):
			h.writeError(w, http.StatusBadRequest, delivery.ErrCompletedStatusNotConfigured.Error())
		default:
			h.log.With(logger.NewField("error", err)).Error("complete delivery")
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

func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	if err := dto.WriteError(w, status, detail); err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}

package delivery_post

import (
	"encoding/json"
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
	handlerLog := log.With(logger.NewField("handler", "delivery_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var deliveryWriteDTO dto.DeliveryWrite
	err := json.NewDecoder(r.Body).Decode(&deliveryWriteDTO)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	modify, err := deliveryWriteDTO.ToModify()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deliveryEntity, err := h.service.CreateDelivery(r.Context(), modify)
	if err != nil {
		switch {
		case delivery.ValidationError(err) != nil:
			h.writeError(w, http.StatusBadRequest, delivery.ValidationError(err).Error())
		default:
			h.log.With(logger.NewField("error", err)).Error("create delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	err = dto.WriteJSON(w, http.StatusCreated, dto.FromDelivery(deliveryEntity))
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

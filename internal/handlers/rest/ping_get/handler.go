package ping_get

import (
	"net/http"

	"logistics/internal/handlers/rest/dto"
	"logistics/pkg/logger"
)

// Handler - liveness без обращения к зависимостям, в отличие от /healthcheck.
type Handler struct {
	log     handlerLogger
	service string
}

func New(log handlerLogger, service string) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "ping_get")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	err := dto.WriteJSON(w, http.StatusOK, dto.PingResponse{Message: "pong", Service: h.service})
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}

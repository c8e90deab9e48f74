package analytics_get

import (
	"errors"
	"net/http"
	"strings"

	"logistics/internal/handlers/rest/dto"
	"logistics/internal/service/analytics"
	"logistics/internal/service/filters"
	"logistics/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "analytics_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetAnalytics(r.Context(), filters.ParamsFromQuery(r.URL.Query()))
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("aggregate analytics")

		detail := "internal error"
		if errors.Is(err, analytics.ErrAggregationFailed) {
			cause := strings.TrimPrefix(err.Error(), analytics.ErrAggregationFailed.Error()+": ")
			detail = "analytics: " + cause
		}
		if werr := dto.WriteError(w, http.StatusInternalServerError, detail); werr != nil {
			h.log.With(logger.NewField("error", werr)).Error("encode JSON response")
		}
		return
	}

	err = dto.WriteJSON(w, http.StatusOK, dto.FromReport(report))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

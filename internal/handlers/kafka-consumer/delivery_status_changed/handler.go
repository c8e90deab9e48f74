package delivery_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"logistics/internal/entities"
	"logistics/internal/service/delivery"
	"logistics/pkg/logger"
)

type Handler struct {
	service        Service
	log            handlerLogger
	processTimeout time.Duration
}

func New(log handlerLogger, service Service, timeout time.Duration) *Handler {
	return &Handler{
		service:        service,
		log:            log.With(logger.NewField("handler", "delivery_status_changed")),
		processTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("delivery.status.changed: claim closed, exiting")
				return nil
			}

			if stop := h.process(sess, message); stop {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("delivery.status.changed: session done, exiting")
			return nil
		}
	}
}

// process обрабатывает одно сообщение и возвращает true, если нужно выйти из
// ConsumeClaim. Неотмеченное сообщение будет прочитано снова после ребаланса.
func (h *Handler) process(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.processTimeout)
	defer cancel()

	var event statusChangedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("delivery.status.changed: bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("delivery", event.DeliveryID.String()),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	if entities.StatusCode(event.Status) != entities.StatusCompleted {
		msgLog.Warn("delivery.status.changed: status is not handled, skipping")
		sess.MarkMessage(message, "")
		return false
	}

	d, err := h.service.CompleteDelivery(ctx, event.DeliveryID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			msgLog.With(logger.NewField("error", err)).
				Warn("delivery.status.changed: context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, delivery.ErrDeliveryNotFound),
			errors.Is(err, delivery.ErrInvalidDeliveryID):
			msgLog.With(logger.NewField("error", err)).Warn("delivery.status.changed: unknown delivery")

		case errors.Is(err, delivery.ErrCompletedStatusNotConfigured):
			msgLog.With(logger.NewField("error", err)).Warn("delivery.status.changed: completion rejected")

		default:
			msgLog.With(logger.NewField("error", err)).Error("delivery.status.changed: failed to complete delivery")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(logger.NewField("status_id", d.StatusID.String())).Info("delivery.status.changed: processed")
	sess.MarkMessage(message, "")
	return false
}

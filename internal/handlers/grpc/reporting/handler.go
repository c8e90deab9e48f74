package reporting

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"logistics/internal/handlers/rest/dto"
	"logistics/internal/service/analytics"
	"logistics/internal/service/delivery"
	"logistics/pkg/logger"
)

type Handler struct {
	log        handlerLogger
	deliveries DeliveryService
	analytics  AnalyticsService
}

func New(log handlerLogger, deliveries DeliveryService, analytics AnalyticsService) *Handler {
	return &Handler{
		log:        log.With(logger.NewField("handler", "grpc_reporting")),
		deliveries: deliveries,
		analytics:  analytics,
	}
}

func (h *Handler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, h)
}

func (h *Handler) ListDeliveries(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	page, err := h.deliveries.ListDeliveries(ctx, toParams(in))
	if err != nil {
		return nil, h.internal("list deliveries", err)
	}

	out, err := toStruct(dto.FromPage(page))
	if err != nil {
		return nil, h.internal("encode deliveries", err)
	}
	return out, nil
}

func (h *Handler) GetAnalytics(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	report, err := h.analytics.GetAnalytics(ctx, toParams(in))
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("aggregate analytics")
		cause := strings.TrimPrefix(err.Error(), analytics.ErrAggregationFailed.Error()+": ")
		return nil, status.Error(codes.Internal, "analytics: "+cause)
	}

	out, err := toStruct(dto.FromReport(report))
	if err != nil {
		return nil, h.internal("encode analytics", err)
	}
	return out, nil
}

func (h *Handler) CompleteDelivery(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	raw, _ := valueString(in.GetFields()["id"])
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "id: %q is not a valid delivery id", raw)
	}

	d, err := h.deliveries.CompleteDelivery(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrDeliveryNotFound),
			errors.Is(err, delivery.ErrInvalidDeliveryID):
			return nil, status.Error(codes.NotFound, delivery.ErrDeliveryNotFound.Error())
		case errors.Is(err, delivery.ErrCompletedStatusNotConfigured):
			return nil, status.Error(codes.FailedPrecondition, delivery.ErrCompletedStatusNotConfigured.Error())
		default:
			return nil, h.internal("complete delivery", err)
		}
	}

	out, err := toStruct(dto.FromDelivery(d))
	if err != nil {
		return nil, h.internal("encode delivery", err)
	}
	return out, nil
}

func (h *Handler) internal(msg string, err error) error {
	h.log.With(logger.NewField("error", err)).Error(msg)
	return status.Error(codes.Internal, "internal error")
}

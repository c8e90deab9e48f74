package grpcserver

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"logistics/internal/pkg/middlewares/auth"
	"logistics/pkg/logger"
)

// recoveryInterceptor превращает панику обработчика в codes.Internal.
func recoveryInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.With(
					logger.NewField("method", info.FullMethod),
					logger.NewField("panic", fmt.Sprint(r)),
				).Error("gRPC handler panic")
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func loggingInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)
		code := status.Code(err)

		GRPCRequestDuration.WithLabelValues(info.FullMethod, code.String()).Observe(duration.Seconds())

		log.With(
			logger.NewField("method", info.FullMethod),
			logger.NewField("code", code.String()),
			logger.NewField("duration", duration.String()),
		).Info("gRPC request")

		return resp, err
	}
}

// authInterceptor ожидает токен в metadata "authorization" в виде "Bearer <jwt>".
func authInterceptor(verifier *auth.Verifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}

		token, err := auth.BearerToken(header)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, auth.ErrInvalidToken.Error())
		}

		return handler(auth.WithIdentity(ctx, identity), req)
	}
}

package grpcserver

import (
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"logistics/internal/pkg/middlewares/auth"
	"logistics/pkg/logger"
)

const (
	KeepaliveTime         = 5 * time.Minute
	KeepaliveTimeout      = 3 * time.Second
	KeepaliveMinPingDelay = 1 * time.Minute
)

// Registrar регистрирует свой сервис на сервере.
type Registrar interface {
	Register(s grpc.ServiceRegistrar)
}

// New собирает сервер с цепочкой recovery -> logging -> auth.
func New(log logger.Logger, verifier *auth.Verifier, services ...Registrar) *grpc.Server {
	grpcLog := log.With(logger.NewField("component", "grpc-server"))

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recoveryInterceptor(grpcLog),
			loggingInterceptor(grpcLog),
			authInterceptor(verifier),
		),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime: KeepaliveMinPingDelay,
		}),
	)

	for _, s := range services {
		s.Register(server)
	}

	return server
}

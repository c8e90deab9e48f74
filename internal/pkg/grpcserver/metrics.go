package grpcserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var GRPCRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "grpc_server_request_duration_seconds",
		Help:    "Duration of unary gRPC calls",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	},
	[]string{"method", "grpc_code"},
)

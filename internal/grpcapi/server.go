package grpcapi

import (
	"log/slog"

	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewServer builds a gRPC server with the notification service and the
// standard health service registered. Both report SERVING.
func NewServer(
	notifications service.NotificationService,
	jwtService auth.JWTService,
	logger *slog.Logger,
	opts ...grpc.ServerOption,
) (*grpc.Server, *health.Server) {
	// Logging runs first so auth failures are logged with a trace ID
	opts = append(opts, grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		AuthInterceptor(jwtService),
	))
	srv := grpc.NewServer(opts...)

	RegisterNotificationServer(srv, NewNotificationServer(notifications, logger))

	// "" is the overall server status checked by default health checks
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(NotificationServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, healthServer
}

package grpcserver

import (
	"net"

	"leaguestats/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Name reported on the health checks.
const ServiceName = "leaguestats.MatchService"

// HealthServer exposes the standard grpc health service while the api is up.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	logger *logger.NewLogger
}

func NewHealthServer(log *logger.NewLogger) *HealthServer {
	grpcServer := grpc.NewServer()

	// Register the health check.
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &HealthServer{
		server: grpcServer,
		health: healthServer,
		logger: log,
	}
}

// Serve blocks until the server stops.
func (h *HealthServer) Serve(lis net.Listener) error {
	h.logger.Infof("Running gRPC health server on %s", lis.Addr())
	return h.server.Serve(lis)
}

// Shutdown reports not serving and drains the server.
func (h *HealthServer) Shutdown() {
	h.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	h.health.Shutdown()
	h.server.GracefulStop()
}

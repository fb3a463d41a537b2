package health

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
)

// Check reports an unhealthy dependency by returning an error.
type Check func(ctx context.Context) error

// Server exposes the standard gRPC health service. The overall ("") status
// follows the configured checks.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	checks map[string]Check
}

func NewServer(checks map[string]Check) *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		checks: checks,
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop marks the service as not serving and stops the gRPC server gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Probe runs all checks once and updates the serving status.
func (s *Server) Probe(ctx context.Context) bool {
	healthy := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			logger.Log.Warnw("health check failed", "check", name, "error", err)
			healthy = false
		}
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	return healthy
}

// Run probes immediately and then every interval until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	s.Probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			s.Probe(probeCtx)
			cancel()
		}
	}
}

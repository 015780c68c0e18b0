package grpc

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/weiawesome/supplyfinder/pkg/greeter"
	pkglog "github.com/weiawesome/supplyfinder/pkg/log"
	pb "github.com/weiawesome/supplyfinder/proto/supplyfinder"
)

// NewServer builds the vendor gRPC server: Greeter plus health.
func NewServer(logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
	)
	pb.RegisterGreeterServer(s, greeter.NewServer())

	hs := health.NewServer()
	hs.SetServingStatus(pb.Greeter_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}

// StartGRPCServer listens on addr and serves in a background goroutine.
func StartGRPCServer(addr string, logger zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(logger)

	go func() {
		logger.Info().Str("addr", addr).Msg("vendor grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}

package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	pkglog "github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/pkg/record"
	pb "github.com/weiawesome/supplyfinder/proto/supplyfinder"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/service"
)

type greeterServer struct {
	pb.UnimplementedGreeterServer
	svc service.LookupService
}

func (s *greeterServer) Greet(ctx context.Context, req *pb.GreetRequest) (*pb.GreetReply, error) {
	return &pb.GreetReply{Message: s.svc.Greet(ctx, req.GetName())}, nil
}

type lookupServer struct {
	pb.UnimplementedLookupServer
	svc service.LookupService
}

// InquireRecord answers a miss in the reply body (found=false); only bad
// input, cancellation and faults become status errors.
func (s *lookupServer) InquireRecord(ctx context.Context, req *pb.InquireRecordRequest) (*pb.InquireRecordReply, error) {
	reply, err := s.svc.InquireRecord(ctx, req.GetId())
	if err != nil {
		return nil, record.ToStatus(err)
	}
	if !reply.Found {
		return &pb.InquireRecordReply{Found: false, Record: &pb.Record{}}, nil
	}

	return &pb.InquireRecordReply{
		Found: true,
		Record: &pb.Record{
			Url:      reply.Record.URL,
			Name:     reply.Record.Name,
			Location: reply.Record.Location,
		},
	}, nil
}

// NewServer builds a gRPC server exposing Greeter, Lookup and the standard
// health service for svc.
func NewServer(svc service.LookupService, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
		grpc.ChainStreamInterceptor(pkglog.StreamServerInterceptor(logger)),
	)
	pb.RegisterGreeterServer(s, &greeterServer{svc: svc})
	pb.RegisterLookupServer(s, &lookupServer{svc: svc})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(pb.Greeter_ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(pb.Lookup_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}

// StartGRPCServer listens on addr and serves in a background goroutine.
func StartGRPCServer(addr string, svc service.LookupService, logger zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(svc, logger)

	go func() {
		logger.Info().Str("addr", addr).Msg("grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkglog "github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/vendor-service/internal/config"
	vendorgrpc "github.com/weiawesome/supplyfinder/vendor-service/internal/grpc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "vendor-service",
	})
	logger := pkglog.L()

	grpcAddr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	grpcServer, err := vendorgrpc.StartGRPCServer(grpcAddr, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start grpc server")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down vendor-service")
	grpcServer.GracefulStop()
	logger.Info().Msg("vendor-service stopped")
}

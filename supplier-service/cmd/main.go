package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	pkglog "github.com/weiawesome/supplyfinder/pkg/log"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/config"
	suppliergrpc "github.com/weiawesome/supplyfinder/supplier-service/internal/grpc"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/handler"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/registry"
	"github.com/weiawesome/supplyfinder/supplier-service/internal/service"
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
		ServiceName: "supplier-service",
	})
	logger := pkglog.L()

	logger.Info().Msg("starting supplier-service")

	reg := registry.New(cfg.Registry.Seed...)
	logger.Info().Int(pkglog.FieldRecords, reg.Len()).Msg("registry populated")

	lookupService := service.NewLookupService(reg)

	grpcAddr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	grpcServer, err := suppliergrpc.StartGRPCServer(grpcAddr, lookupService, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start grpc server")
	}

	var httpServer *http.Server
	if cfg.Server.Enabled {
		gin.SetMode(gin.ReleaseMode)
		r := gin.New()
		r.Use(gin.Recovery())
		r.Use(pkglog.GinMiddleware(logger))
		handler.NewHandler(lookupService).RegisterRoutes(r)

		httpServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: r,
		}
		go func() {
			logger.Info().Str("addr", httpServer.Addr).Msg("admin http server listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("admin http server error")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down supplier-service")

	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("admin http shutdown")
		}
		cancel()
	}
	grpcServer.GracefulStop()

	logger.Info().Msg("supplier-service stopped")
}

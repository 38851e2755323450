package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/app/background"
	"github.com/LavaJover/shvark-pricing-service/internal/app/setup"
	"github.com/LavaJover/shvark-pricing-service/internal/config"
	"github.com/LavaJover/shvark-pricing-service/internal/delivery/grpcapi"
	publisher "github.com/LavaJover/shvark-pricing-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	slogger := logger.New(cfg.LogConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps, err := setup.InitializeDependencies(ctx, cfg, slogger, registry)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.Close()

	ucs, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	var invalidation *background.InvalidationConsumer
	if deps.Subscriber != nil {
		invalidation = &background.InvalidationConsumer{
			Source:  deps.Subscriber,
			Handler: publisher.NewConfigEventHandler(ucs.PricingUsecase),
			Topic:   cfg.KafkaService.ConfigTopic,
			GroupID: cfg.KafkaService.GroupID,
		}
	}
	var sweeper interface{ RemoveExpired() int }
	if deps.MemoryStore != nil {
		sweeper = deps.MemoryStore
	}
	tasks := background.NewBackgroundTasks(sweeper, cfg.Cache.SweepInterval, invalidation, slogger)
	tasks.StartAll(ctx)

	// Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("metrics server stopped", "error", err)
		}
	}()

	// Creating gRPC server
	grpcServer := grpc.NewServer()
	grpcapi.RegisterPricingServiceServer(grpcServer, grpcapi.NewPricingHandler(ucs.PricingUsecase))

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		<-ctx.Done()
		slogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
	}()

	slogger.Info("gRPC server started", "addr", lis.Addr().String(), "env", cfg.Env)
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

package app

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	healthcheck "github.com/vladislavdragonenkov/backoffice/internal/health"
	"github.com/vladislavdragonenkov/backoffice/internal/metrics"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
	grpcsvc "github.com/vladislavdragonenkov/backoffice/internal/service/grpc"
	"github.com/vladislavdragonenkov/backoffice/internal/version"
)

const grpcStopTimeout = 5 * time.Second

// Run поднимает хранилище, gRPC API, HTTP с метриками и, при заданных брокерах,
// воркер outbox. Возвращает ctx.Err() после остановки по сигналу.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	svc := backoffice.NewService(deps.repos,
		backoffice.WithLogger(logger.WithField("layer", "service")),
		backoffice.WithMetrics(metrics.NewBackofficeMetrics()),
		backoffice.WithReportWindow(cfg.ReportWindow),
	)

	healthHandler := healthcheck.NewHandler(version.Current().Version)
	healthHandler.RegisterChecker("storage", healthcheck.NewStorageChecker(deps.pinger))

	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	workerCtx, stopWorker := context.WithCancel(ctx)
	var workerWG sync.WaitGroup
	if worker := newOutboxWorker(cfg, deps, kafkaProducer, logger); worker != nil {
		healthHandler.RegisterChecker("outbox", healthcheck.NewOutboxChecker(deps.outboxRepo, cfg.OutboxMaxAge))
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			worker.Run(workerCtx)
		}()

		if cleanup := newOutboxCleanup(cfg, deps, logger); cleanup != nil {
			workerWG.Add(1)
			go func() {
				defer workerWG.Done()
				cleanup.Run(workerCtx)
			}()
		}
	} else {
		logger.Info("kafka brokers are not configured, outbox events stay pending")
	}
	defer func() {
		stopWorker()
		workerWG.Wait()
	}()

	grpcMetrics := promgrpc.NewServerMetrics()
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	backofficev1.RegisterBackofficeServiceServer(grpcServer, grpcsvc.NewBackofficeService(svc, logger.WithField("layer", "grpc")))
	grpcMetrics.InitializeMetrics(grpcServer)
	reflection.Register(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	httpCtx, stopHTTP := context.WithCancel(ctx)
	defer stopHTTP()
	metricsSrv, err := startMetricsServer(httpCtx, cfg.MetricsAddr, logger, healthHandler)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		shutdownHTTP(metricsSrv, logger)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC сервер слушает %s", lis.Addr())
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем gRPC сервер")
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		stoppedCh := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stoppedCh)
		}()
		select {
		case <-stoppedCh:
		case <-time.After(grpcStopTimeout):
			logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
			grpcServer.Stop()
		}
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()

	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/O-KenneDevWorks/Employee-Manager/internal/api/http"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/api/http/handlers"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve GET /employees and POST /department over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, set := os.LookupEnv("LOG_ENCODING"); !set {
			cfg.Logger.Encoding = "json"
			l, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return err
			}
			logger = l
		}
		return runServer(cmd.Context())
	},
}

func runServer(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	rt, err := newRuntime(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return err
	}
	defer rt.Close()

	checks := map[string]handlers.Pinger{"postgres": rt.pg}
	if rt.redis != nil {
		checks["redis"] = rt.redis
	}

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(httptransport.AppConfig{
		Name:    cfg.App.Name,
		Timeout: cfg.App.RequestTimeout,
		Logger:  logger,
		Metrics: metrics,
	}, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Employees:   handlers.NewEmployeesHandler(rt.org),
		Departments: handlers.NewDepartmentsHandler(rt.org),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		logger.Error("fiber listen", zap.Error(err))
		return err
	case sig := <-waitForShutdown():
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}
	snap := metrics.Snapshot()
	logger.Info("request metrics",
		zap.Any("requests", snap.Requests),
		zap.Any("errors", snap.Errors),
		zap.Any("avg_latency", snap.AvgLatency))
	return app.Shutdown()
}

func waitForShutdown() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}

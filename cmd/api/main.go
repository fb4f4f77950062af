package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bigfive-relay/internal/config"
	apihttp "bigfive-relay/internal/http"
	"bigfive-relay/internal/metrics"
	"bigfive-relay/internal/predictor"
	"bigfive-relay/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		relayMetrics *metrics.Metrics
		metricsH     http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		relayMetrics, err = metrics.New(registry)
		if err != nil {
			logger.Fatal("metrics setup", zap.Error(err))
		}
		metricsH = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	predictorClient := predictor.NewHTTPClient(cfg.UpstreamURL, cfg.UpstreamTimeout, logger)
	personalitySvc := service.NewPersonalityService(predictorClient, relayMetrics, logger)
	personalityHandler := apihttp.NewPersonalityHandler(logger, personalitySvc)
	router := apihttp.NewRouter(logger, cfg.CORSAllowedOrigins, personalityHandler, metricsH)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("upstream_url", cfg.UpstreamURL),
	)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
	if err := serve(ctx, server, ln, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// serve atiende en ln hasta que ctx se cancela y luego espera a que terminen las
// peticiones en curso (y su llamada al upstream) antes de volver.
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Serve(ln)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

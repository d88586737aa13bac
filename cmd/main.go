package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"optiwatt/internal/config"
	"optiwatt/internal/delivery"
	"optiwatt/internal/genai"
	"optiwatt/internal/handlers"
	"optiwatt/internal/logger"
	"optiwatt/internal/repository"
	"optiwatt/internal/repository/db"
	"optiwatt/internal/seed"
	"optiwatt/internal/server"
	"optiwatt/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + OPTIWATT_* env
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// open local state store
	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DBPath)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	deliverer, err := newDeliverer(cfg, log)
	if err != nil {
		log.Fatalw("failed to init report delivery", "err", err, "provider", cfg.Delivery.Provider)
	}

	if cfg.AI.APIKey == "" {
		log.Warnw("ai api key not set; suggestions and AI reports will fall back to defaults")
	}

	generator, err := genai.New(context.Background(), cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.APIKey, cfg.AI.Timeout)
	if err != nil {
		log.Fatalw("failed to init ai client", "err", err, "model", cfg.AI.Model)
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		Seed:      seed.MustLoad(),
		Generator: generator,
		Deliverer: deliverer,
		Session: service.SessionConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
			LoginDelay: cfg.Auth.LoginDelay,
		},
		RatePerKWh:  cfg.Dashboard.RatePerKWh,
		DeletionTTL: cfg.Hierarchy.DeletionTTL,
		ExpertDelay: cfg.Reports.ExpertDelay,
		Log:         log,
	})
	apiHandler := handlers.NewHandler(services, log).WithStreamInterval(cfg.Dashboard.StreamInterval)

	// start HTTP server
	srv := server.New(cfg.WriteTimeout)
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func newDeliverer(cfg *config.Config, log *logger.Logger) (service.ReportDeliverer, error) {
	if cfg.Delivery.Provider != "aws" {
		return delivery.NewSimulated(cfg.Delivery.Delay), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Infow("report delivery via aws", "region", cfg.Delivery.Region, "bucket", cfg.Delivery.Bucket)
	return delivery.NewAWS(ctx, delivery.AWSConfig{
		Region:    cfg.Delivery.Region,
		Bucket:    cfg.Delivery.Bucket,
		TopicARN:  cfg.Delivery.TopicARN,
		URLExpiry: cfg.Delivery.URLExpiry,
	})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "relay_control/docs"
	"relay_control/internal/config"
	"relay_control/internal/device"
	"relay_control/internal/handlers"
	"relay_control/internal/logger"
	"relay_control/internal/repository"
	"relay_control/internal/server"
	"relay_control/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Relay Control API
// @version      1.0
// @description  Dashboard API for a two-relay ESP32 timer controller.
// @BasePath     /
func main() {
	// load configs/config.yml + RELAY_* env
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	// wire dependencies
	client, err := device.NewClient(cfg.Device.Address, http.DefaultClient)
	if err != nil {
		log.Fatalw("invalid device address", "address", cfg.Device.Address, "err", err)
	}
	repos := repository.NewRepository(client)
	services := service.NewService(repos, log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start status poller (1 s cadence)
	log.Infow("device_configured", "address", client.BaseURL())
	go services.Poller.Run(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", server.NormalizeAddr(port))
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the poller and cancel in-flight device calls
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

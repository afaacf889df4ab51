// Command devicesim serves the relay firmware's HTTP API from memory so the
// dashboard can run without hardware.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay_control/internal/config"
	"relay_control/internal/logger"
	"relay_control/internal/server"
	"relay_control/internal/simulator"
)

const defaultSimTick = 1 * time.Second

func main() {
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel).With("component", "devicesim")

	dev := simulator.NewDevice(cfg.Simulator.DeviceID, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dev.Run(ctx, defaultSimTick)

	srv := &server.Server{}
	go func() {
		log.Infow("http_listening", "addr", server.NormalizeAddr(cfg.Simulator.Port))
		if err := srv.Run(cfg.Simulator.Port, dev.Routes()); err != nil {
			log.Fatalw("error starting simulator", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("simulator forced to shutdown", "err", err)
	}
}

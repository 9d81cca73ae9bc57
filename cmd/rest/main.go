package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"interview-assistant-be/internal/bootstrap"
	"interview-assistant-be/internal/config"
	"interview-assistant-be/internal/server"

	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env", ".env", "path to an env file")
	pflag.Parse()

	// 1. Load Configuration
	cfg := config.Load(*envFile)

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	// 3. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := container.StartConsumers(ctx); err != nil {
		log.Fatalf("start consumers: %v", err)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			container.Logger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		container.Logger.Info("MAIN", "Shutdown signal received", nil)
		if err := srv.Shutdown(); err != nil {
			container.Logger.Error("MAIN", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := container.Close(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

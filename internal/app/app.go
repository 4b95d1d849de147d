// Package app is the composition root of the remodel-portal server. It loads
// configuration, connects storage, seeds the bootstrap administrator, and
// assembles the service, handler, and server layers.
package app

import (
	"context"
	"fmt"

	"remodel-portal/internal/config"
	"remodel-portal/internal/handler"
	"remodel-portal/internal/logger"
	"remodel-portal/internal/server"
	"remodel-portal/internal/service"
	"remodel-portal/internal/store"
)

// Run wires the application together and blocks until the server shuts down.
func Run() error {
	log := logger.NewLogger("remodel-portal-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}

	services := service.NewServices(storages, cfg, log)

	if err := services.AuthService.EnsureBootstrapAdmin(ctx, cfg.Bootstrap); err != nil {
		return fmt.Errorf("error seeding bootstrap admin: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	srv.RunServer()

	return nil
}

package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/hostelease/hostelease/internal/pkg/logger"
	"github.com/hostelease/hostelease/internal/server"
)

// @title HostelEase API
// @version 1.0
// @description Hostel management backend: rooms, complaints, visitors, leave, mess menus, announcements and fee payments.

// @host localhost:4000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Secrets and overrides come from the environment; .env is optional
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}

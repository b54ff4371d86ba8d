package main

import (
	"os"

	"github.com/schoolbill/backend/internal/pkg/logger"
	"github.com/schoolbill/backend/internal/server"
)

// @title SchoolBill API
// @version 1.0
// @description Fee billing and payment reconciliation API for schools
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@schoolbill.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}

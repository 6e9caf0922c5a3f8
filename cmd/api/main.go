package main

import (
	"os"

	"github.com/apavel/studygate/internal/pkg/logger"
	"github.com/apavel/studygate/internal/server"
)

// @title StudyGate API
// @version 1.0
// @description API for the StudyGate university admissions platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@studygate.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives or the listener fails.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}

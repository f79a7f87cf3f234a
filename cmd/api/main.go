package main

import (
	"os"

	"github.com/yigit/abimath/internal/pkg/logger"
	"github.com/yigit/abimath/internal/server"
)

// @title AbiMath API
// @version 1.0
// @description REST backend for the AbiMath drilling app: classes, students and their result grids.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/escolabr/escolar/internal/bootstrap"
	"github.com/escolabr/escolar/internal/config"
	"github.com/escolabr/escolar/internal/pkg/logger"
	"github.com/escolabr/escolar/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	migrationsDir := flag.String("migrations", "migrations", "path to migrations directory")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})

	app, err := bootstrap.Initialize(context.Background(), cfg, *migrationsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	if err := server.New(app).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server error")
	}
}

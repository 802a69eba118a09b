package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/escolabr/escolar/internal/app/controllers"
	"github.com/escolabr/escolar/internal/app/migrations"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/app/services"
	"github.com/escolabr/escolar/internal/config"
	"github.com/escolabr/escolar/internal/db"
	"github.com/escolabr/escolar/internal/pkg/auth"
	"github.com/escolabr/escolar/internal/pkg/helpers"
	"github.com/escolabr/escolar/internal/seed"
)

// App holds the wired application components.
type App struct {
	Config      *config.Config
	DB          *db.PostgresDB
	JWTService  *auth.JWTService
	Controllers *controllers.Controllers
}

// Initialize connects to the database, runs migrations and seeding, and
// wires repositories, services and controllers.
func Initialize(ctx context.Context, cfg *config.Config, migrationsDir string) (*App, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}

	if err := migrations.NewMigrator(database, migrationsDir).Run(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	repos := repositories.NewRepositories(database)

	if err := seed.Run(ctx, cfg, repos); err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding failed: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 30*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	svcs := services.NewServices(database, repos, jwtService)

	return &App{
		Config:      cfg,
		DB:          database,
		JWTService:  jwtService,
		Controllers: controllers.NewControllers(svcs),
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

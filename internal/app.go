// Package internal contains core application functionality
package internal

import (
	"fmt"

	"github.com/karloscodes/cartridge"

	"couplegate/internal/admins"
	"couplegate/internal/config"
	"couplegate/internal/database"
	"couplegate/internal/jobs"
)

// Application wraps cartridge.Application with couplegate-specific components
type Application struct {
	*cartridge.Application
	DBManager *database.DBManager // Couplegate-specific DB manager with migration methods

	cfg *config.Config
}

// NewApp creates a new application instance with default settings
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	return newApp(cfg, MountAppRoutes)
}

// NewAppWithRoutes creates a new application with a custom route mounting function
func NewAppWithRoutes(cfg *config.Config, routeMount func(*cartridge.Server)) (*Application, error) {
	return newApp(cfg, routeMount)
}

func newApp(cfg *config.Config, routeMount func(*cartridge.Server)) (*Application, error) {
	logger := cartridge.NewLogger(cfg, nil)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scheduler, err := jobs.NewScheduler(dbManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jobs: %w", err)
	}

	app, err := cartridge.NewApplication(cartridge.ApplicationOptions{
		Config:            cfg,
		Logger:            logger,
		DBManager:         dbManager,
		RouteMountFunc:    routeMount,
		BackgroundWorkers: []cartridge.BackgroundWorker{scheduler},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return &Application{
		Application: app,
		DBManager:   dbManager,
		cfg:         cfg,
	}, nil
}

// EnsureDefaultAdmin creates the configured admin account if no account with
// that username exists yet. Existing accounts keep their current password.
func (a *Application) EnsureDefaultAdmin() error {
	db := a.DBManager.GetConnection()
	if err := admins.SetupDefaultAdmin(db, a.cfg.AdminUsername, a.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to set up default admin: %w", err)
	}
	return nil
}

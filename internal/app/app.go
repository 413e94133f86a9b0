package app

import (
	"context"
	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/websockets"

	adminController "server/internal/controllers/admin"
	leadController "server/internal/controllers/lead"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	Notifier *services.NotifierService

	// Repositories
	LeadRepo repositories.LeadRepository

	// Controllers
	LeadController  *leadController.LeadController
	AdminController *adminController.AdminController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New()

	// Initialize services
	notifier := services.NewNotifier(config)

	// Initialize repositories
	leadRepo := repositories.New(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(config)
	leadController := leadController.New(leadRepo, notifier, eventBus)

	adminController, err := adminController.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create admin controller", err)
	}

	websocket := websockets.New(eventBus)

	app := &App{
		Database:        db,
		Config:          config,
		Middleware:      middleware,
		Notifier:        notifier,
		LeadRepo:        leadRepo,
		LeadController:  leadController,
		AdminController: adminController,
		Websocket:       websocket,
		EventBus:        eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	if err := leadController.SeedIfEmpty(context.Background()); err != nil {
		return &App{}, log.Err("failed to seed sample leads", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Notifier,
		a.LeadController,
		a.AdminController,
		a.LeadRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

package app

import (
	"context"
	"time"

	"cleanconnect/config"
	"cleanconnect/internal/controllers"
	"cleanconnect/internal/database"
	"cleanconnect/internal/events"
	"cleanconnect/internal/handlers/middleware"
	"cleanconnect/internal/jobs"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/seed"
	"cleanconnect/internal/services"
	"cleanconnect/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	return Build(db, config)
}

// Build wires every component on top of an opened database.
func Build(db database.DB, config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	if err := db.MigrateModels(); err != nil {
		return &App{}, log.Err("failed to migrate models", err)
	}

	repos := repositories.New(db)
	service := services.New(db, config, repos)

	if config.SeedOnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repos.EnsureSeed(ctx, seed.Data(service.Auth.HashPassword, service.Clock())); err != nil {
			return &App{}, log.Err("failed to seed collections", err)
		}
	}

	eventBus := events.New(db.Cache.Events)

	websocket, err := websockets.New(eventBus, service.Auth)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	if err := jobs.RegisterAllJobs(service.Scheduler, config, service, repos); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware.New(config, service.Auth),
		Websocket:   websocket,
		EventBus:    eventBus,
		Services:    service,
		Repos:       repos,
		Controllers: controllers.New(service, repos, eventBus),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config.StoreDriver != config.StoreDriverMemory && a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Auth,
		a.Services.Mail,
		a.Controllers.Auth,
		a.Controllers.Cleaners,
		a.Controllers.Bookings,
		a.Controllers.Payments,
		a.Controllers.Reviews,
		a.Controllers.Catalog,
		a.Controllers.Profile,
		a.Controllers.Dashboard,
		a.Controllers.Support,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

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

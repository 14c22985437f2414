package handlers

import (
	"cleanconnect/internal/app"
	"cleanconnect/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app *app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(file),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) error {
	WebSocketHandler(router, app.Websocket)

	api := router.Group("/api", app.Middleware.TraceID())
	HealthHandler(api, app.Config)
	LocationHandler(api)
	NewAuthHandler(app, api).Register()
	NewCleanerHandler(app, api).Register()
	NewSupportHandler(app, api).Register()
	NewUserHandler(app, api).Register()
	NewBookingHandler(app, api).Register()
	NewDashboardHandler(app, api).Register()
	NewProfileHandler(app, api).Register()
	NewReviewHandler(app, api).Register()
	NewServiceHandler(app, api).Register()
	NewPaymentHandler(app, api).Register()

	return nil
}

package controllers

import (
	"cleanconnect/internal/events"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"

	authController "cleanconnect/internal/controllers/auth"
	bookingsController "cleanconnect/internal/controllers/bookings"
	catalogController "cleanconnect/internal/controllers/catalog"
	cleanersController "cleanconnect/internal/controllers/cleaners"
	dashboardController "cleanconnect/internal/controllers/dashboard"
	paymentsController "cleanconnect/internal/controllers/payments"
	profileController "cleanconnect/internal/controllers/profile"
	reviewsController "cleanconnect/internal/controllers/reviews"
	supportController "cleanconnect/internal/controllers/support"
)

type Controllers struct {
	Auth      authController.AuthControllerInterface
	Cleaners  cleanersController.CleanersControllerInterface
	Bookings  bookingsController.BookingsControllerInterface
	Payments  paymentsController.PaymentsControllerInterface
	Reviews   reviewsController.ReviewsControllerInterface
	Catalog   catalogController.CatalogControllerInterface
	Profile   profileController.ProfileControllerInterface
	Dashboard dashboardController.DashboardControllerInterface
	Support   supportController.SupportControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
) Controllers {
	return Controllers{
		Auth:      authController.New(repos, services),
		Cleaners:  cleanersController.New(repos, services),
		Bookings:  bookingsController.New(repos, services, eventBus),
		Payments:  paymentsController.New(repos, services, eventBus),
		Reviews:   reviewsController.New(repos, services),
		Catalog:   catalogController.New(repos),
		Profile:   profileController.New(repos),
		Dashboard: dashboardController.New(repos, services),
		Support:   supportController.New(services),
	}
}

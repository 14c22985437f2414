package handlers

import (
	"cleanconnect/internal/app"
	bookingsController "cleanconnect/internal/controllers/bookings"
	"cleanconnect/internal/handlers/middleware"
	"cleanconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Handler
	bookingsController bookingsController.BookingsControllerInterface
}

type statusRequest struct {
	Status models.BookingStatus `json:"status"`
}

func NewBookingHandler(app *app.App, router fiber.Router) *BookingHandler {
	return &BookingHandler{
		bookingsController: app.Controllers.Bookings,
		Handler:            newHandler(app, router, "booking_handler"),
	}
}

func (h *BookingHandler) Register() {
	bookings := h.router.Group("/bookings", h.middleware.RequireAuth())
	bookings.Post("", h.createBooking)
	bookings.Get("/client", h.listClientBookings)
	bookings.Put("/:id/status", h.updateStatus)
	bookings.Put("/:id/approve", h.approveBooking)
	bookings.Put("/:id/cancel", h.cancelBooking)
}

func (h *BookingHandler) createBooking(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createBooking")

	var req bookingsController.CreateBookingRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	booking, err := h.bookingsController.Create(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, booking)
}

func (h *BookingHandler) listClientBookings(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listClientBookings")

	bookings, err := h.bookingsController.ListForClient(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, bookings)
}

func (h *BookingHandler) updateStatus(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateStatus")

	var req statusRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	booking, err := h.bookingsController.UpdateStatus(c.UserContext(), middleware.GetUser(c), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, booking)
}

func (h *BookingHandler) approveBooking(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("approveBooking")

	booking, err := h.bookingsController.Approve(c.UserContext(), middleware.GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, booking)
}

func (h *BookingHandler) cancelBooking(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("cancelBooking")

	booking, err := h.bookingsController.Cancel(c.UserContext(), middleware.GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, booking)
}

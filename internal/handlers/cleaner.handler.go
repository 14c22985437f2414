package handlers

import (
	"strconv"

	"cleanconnect/internal/app"
	cleanersController "cleanconnect/internal/controllers/cleaners"
	"cleanconnect/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CleanerHandler struct {
	Handler
	cleanersController cleanersController.CleanersControllerInterface
}

func NewCleanerHandler(app *app.App, router fiber.Router) *CleanerHandler {
	return &CleanerHandler{
		cleanersController: app.Controllers.Cleaners,
		Handler:            newHandler(app, router, "cleaner_handler"),
	}
}

func (h *CleanerHandler) Register() {
	cleaners := h.router.Group("/cleaners")
	cleaners.Get("", h.listCleaners)
	cleaners.Get("/:id", h.getCleaner)
}

func (h *CleanerHandler) listCleaners(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listCleaners")

	query := cleanersController.ListQuery{
		Query:       utils.CleanText(c.Query("q")),
		State:       utils.CleanText(c.Query("state")),
		City:        utils.CleanText(c.Query("city")),
		Specialties: utils.SplitList(c.Query("specialties")),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		query.Limit = limit
	}

	cleaners, err := h.cleanersController.List(c.UserContext(), query)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, cleaners)
}

func (h *CleanerHandler) getCleaner(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getCleaner")

	cleaner, err := h.cleanersController.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, cleaner)
}

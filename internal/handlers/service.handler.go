package handlers

import (
	"cleanconnect/internal/app"
	catalogController "cleanconnect/internal/controllers/catalog"
	"cleanconnect/internal/handlers/middleware"
	"cleanconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ServiceHandler struct {
	Handler
	catalogController catalogController.CatalogControllerInterface
}

func NewServiceHandler(app *app.App, router fiber.Router) *ServiceHandler {
	return &ServiceHandler{
		catalogController: app.Controllers.Catalog,
		Handler:           newHandler(app, router, "service_handler"),
	}
}

func (h *ServiceHandler) Register() {
	services := h.router.Group("/services", h.middleware.RequireAuth())
	services.Get("", h.listServices)
	services.Post("", h.middleware.RequireRole(models.RoleCleaner), h.createService)
	services.Put("/:id", h.updateService)
	services.Delete("/:id", h.deleteService)
}

func (h *ServiceHandler) listServices(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listServices")

	services, err := h.catalogController.ListOwn(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, services)
}

func (h *ServiceHandler) createService(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createService")

	var req catalogController.CreateServiceRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	service, err := h.catalogController.Create(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, service)
}

func (h *ServiceHandler) updateService(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateService")

	var req catalogController.UpdateServiceRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	service, err := h.catalogController.Update(c.UserContext(), middleware.GetUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, service)
}

func (h *ServiceHandler) deleteService(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteService")

	result, err := h.catalogController.Delete(c.UserContext(), middleware.GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, result)
}

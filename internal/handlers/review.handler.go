package handlers

import (
	"cleanconnect/internal/app"
	reviewsController "cleanconnect/internal/controllers/reviews"
	"cleanconnect/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Handler
	reviewsController reviewsController.ReviewsControllerInterface
}

func NewReviewHandler(app *app.App, router fiber.Router) *ReviewHandler {
	return &ReviewHandler{
		reviewsController: app.Controllers.Reviews,
		Handler:           newHandler(app, router, "review_handler"),
	}
}

func (h *ReviewHandler) Register() {
	h.router.Post("/reviews", h.middleware.RequireAuth(), h.createReview)
}

func (h *ReviewHandler) createReview(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createReview")

	var req reviewsController.CreateReviewRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	review, err := h.reviewsController.Create(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, review)
}

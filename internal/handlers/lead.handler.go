package handlers

import (
	"errors"
	"server/internal/app"
	leadController "server/internal/controllers/lead"
	"server/internal/logger"

	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LeadHandler struct {
	Handler
	controller *leadController.LeadController
}

func NewLeadHandler(app app.App, router fiber.Router) *LeadHandler {
	log := logger.New("handlers").File("lead_handler")
	return &LeadHandler{
		controller: app.LeadController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *LeadHandler) Register() {
	h.router.Get("/", h.index)
	h.router.Post("/lead", h.createLead)
	h.router.Get("/thank-you", h.thankYou)
}

func (h *LeadHandler) index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

func (h *LeadHandler) thankYou(c *fiber.Ctx) error {
	return c.Render("thank_you", fiber.Map{})
}

func (h *LeadHandler) createLead(c *fiber.Ctx) error {
	log := h.log.Function("createLead")

	var input LeadInput
	if err := c.BodyParser(&input); err != nil {
		log.Er("failed to parse lead form", err)
		return c.Status(fiber.StatusBadRequest).SendString("Missing required fields")
	}
	input.Source = c.Get(fiber.HeaderReferer)

	if _, err := h.controller.CreateLead(c.Context(), input); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).SendString("Missing required fields")
		}

		log.Er("failed to create lead", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Database error")
	}

	return c.Redirect("/thank-you", fiber.StatusFound)
}

package handlers

import (
	"bufio"
	"context"
	"server/internal/app"
	adminController "server/internal/controllers/admin"
	leadController "server/internal/controllers/lead"
	"server/internal/logger"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller     *adminController.AdminController
	leadController *leadController.LeadController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller:     app.AdminController,
		leadController: app.LeadController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin")
	admin.Get("/", h.loginForm)
	admin.Post("/login", h.login)
	admin.Post("/logout", h.middleware.RequireAuth, h.logout)
	admin.Get("/leads", h.middleware.RequireAuth, h.leads)
	admin.Get("/export.csv", h.middleware.RequireAuth, h.exportCSV)
}

func (h *AdminHandler) loginForm(c *fiber.Ctx) error {
	if h.middleware.IsAuthenticated(c) {
		return c.Redirect("/admin/leads", fiber.StatusFound)
	}

	return c.Render("admin_login", fiber.Map{})
}

func (h *AdminHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	password := c.FormValue("password")
	if password == "" {
		return c.Redirect("/admin", fiber.StatusFound)
	}

	if err := h.controller.Login(password); err != nil {
		return c.Render("admin_login", fiber.Map{"Error": "Invalid password"})
	}

	if err := h.middleware.Authenticate(c); err != nil {
		log.Er("failed to authenticate session", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}

	return c.Redirect("/admin/leads", fiber.StatusFound)
}

func (h *AdminHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	if err := h.middleware.Invalidate(c); err != nil {
		log.Er("failed to invalidate session", err)
	}

	return c.Redirect("/admin", fiber.StatusFound)
}

func (h *AdminHandler) leads(c *fiber.Ctx) error {
	log := h.log.Function("leads")

	query := strings.TrimSpace(c.Query("q"))

	leads, err := h.leadController.SearchLeads(c.Context(), query)
	if err != nil {
		log.Er("failed to search leads", err, "query", query)
		return c.Status(fiber.StatusInternalServerError).SendString("Database error")
	}

	return c.Render("admin_leads", fiber.Map{
		"Leads": leads,
		"Query": query,
		"Count": len(leads),
	})
}

func (h *AdminHandler) exportCSV(c *fiber.Ctx) error {
	log := h.log.Function("exportCSV")

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads.csv"`)

	// The stream writer runs after this handler returns, so it gets its own
	// context rather than the request's.
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := h.leadController.WriteCSV(context.Background(), w); err != nil {
			log.Er("failed to stream lead export", err)
		}
	})

	return nil
}

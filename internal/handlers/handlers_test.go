package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"server/config"
	"server/internal/app"
	adminController "server/internal/controllers/admin"
	leadController "server/internal/controllers/lead"
	"server/internal/database"
	"server/internal/events"
	"server/internal/handlers/middleware"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/websockets"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestViews(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	views := map[string]string{
		"index.html":       "<form action=\"/lead\"></form>",
		"thank_you.html":   "Thanks!",
		"admin_login.html": "login{{if .Error}} error={{.Error}}{{end}}",
		"admin_leads.html": "leads count={{.Count}} q={{.Query}}",
	}
	for name, body := range views {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}

	return dir
}

func newTestServer(t *testing.T) (*fiber.App, *app.App) {
	t.Helper()

	cfg := config.Config{
		Port:           3000,
		DatabaseDbPath: filepath.Join(t.TempDir(), "leads.db"),
		AdminPassword:  "s3cret",
		SessionSecret:  "test-secret",
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	eventBus := events.New()
	t.Cleanup(func() { _ = eventBus.Close() })

	notifier := services.NewNotifier(cfg)
	leadRepo := repositories.New(db)
	leadCtrl := leadController.New(leadRepo, notifier, eventBus)

	adminCtrl, err := adminController.New(cfg)
	require.NoError(t, err)

	application := &app.App{
		Database:        db,
		Config:          cfg,
		Middleware:      middleware.New(cfg),
		Websocket:       websockets.New(eventBus),
		EventBus:        eventBus,
		Notifier:        notifier,
		LeadRepo:        leadRepo,
		LeadController:  leadCtrl,
		AdminController: adminCtrl,
	}

	server := fiber.New(fiber.Config{
		Views: html.New(writeTestViews(t), ".html"),
	})
	require.NoError(t, Router(server, application))

	return server, application
}

func postForm(path string, form url.Values) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func leadForm() url.Values {
	return url.Values{
		"name":           {"Jane Doe"},
		"email":          {"jane@x.com"},
		"phone":          {"555-0100"},
		"insurance_type": {"Auto"},
	}
}

func login(t *testing.T, server *fiber.App, password string) []*http.Cookie {
	t.Helper()

	resp, err := server.Test(postForm("/admin/login", url.Values{"password": {password}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/leads", resp.Header.Get(fiber.HeaderLocation))

	return resp.Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func TestCreateLead_Redirects(t *testing.T) {
	server, application := newTestServer(t)

	resp, err := server.Test(postForm("/lead", leadForm()))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/thank-you", resp.Header.Get(fiber.HeaderLocation))

	leads, err := application.LeadRepo.Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Jane Doe", leads[0].Name)
	assert.Equal(t, "direct", leads[0].Source)
}

func TestCreateLead_MissingFields(t *testing.T) {
	server, application := newTestServer(t)

	form := leadForm()
	form.Del("email")

	resp, err := server.Test(postForm("/lead", form))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	count, err := application.LeadRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCreateLead_RecordsReferrer(t *testing.T) {
	server, application := newTestServer(t)

	request := postForm("/lead", leadForm())
	request.Header.Set(fiber.HeaderReferer, "https://example.com/landing")

	resp, err := server.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	leads, err := application.LeadRepo.Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "https://example.com/landing", leads[0].Source)
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/admin/leads", "/admin/export.csv"} {
		request, _ := http.NewRequest(http.MethodGet, path, nil)
		resp, err := server.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation), path)
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.Test(postForm("/admin/login", url.Values{"password": {"wrong-password"}}))
	require.NoError(t, err)

	// Re-renders the login form instead of redirecting
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The failed attempt must not authenticate the session
	request, _ := http.NewRequest(http.MethodGet, "/admin/leads", nil)
	withCookies(request, resp.Cookies())
	resp, err = server.Test(request)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation))
}

func TestAdminLogin_EmptyPasswordRedirects(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := server.Test(postForm("/admin/login", url.Values{}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation))
}

func TestAdminLeads_WithSession(t *testing.T) {
	server, application := newTestServer(t)

	require.NoError(t, application.LeadController.SeedIfEmpty(context.Background()))

	cookies := login(t, server, "s3cret")

	request, _ := http.NewRequest(http.MethodGet, "/admin/leads", nil)
	withCookies(request, cookies)
	resp, err := server.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminExport_StreamsCSV(t *testing.T) {
	server, application := newTestServer(t)

	require.NoError(t, application.LeadController.SeedIfEmpty(context.Background()))

	cookies := login(t, server, "s3cret")

	request, _ := http.NewRequest(http.MethodGet, "/admin/export.csv", nil)
	withCookies(request, cookies)
	resp, err := server.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "leads.csv")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)

	// Header plus the five seeded rows
	require.Len(t, records, 6)
	assert.Equal(t, []string{"id", "name", "email", "phone", "insurance_type", "message", "source", "created_at"}, records[0])
}

func TestAdminLogout(t *testing.T) {
	server, _ := newTestServer(t)

	cookies := login(t, server, "s3cret")

	request := postForm("/admin/logout", url.Values{})
	withCookies(request, cookies)
	resp, err := server.Test(request)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get(fiber.HeaderLocation))

	// The old session token no longer grants access
	request, _ = http.NewRequest(http.MethodGet, "/admin/leads", nil)
	withCookies(request, cookies)
	resp, err = server.Test(request)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

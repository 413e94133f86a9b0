package middleware

import (
	"server/config"
	"server/internal/logger"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const authKey = "authenticated"

type Middleware struct {
	Store  *session.Store
	config config.Config
	log    logger.Logger
}

func New(config config.Config) Middleware {
	store := session.New(session.Config{
		Expiration:     8 * time.Hour,
		KeyLookup:      "cookie:admin_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})

	return Middleware{
		Store:  store,
		config: config,
		log:    logger.New("middleware"),
	}
}

func (m Middleware) IsAuthenticated(c *fiber.Ctx) bool {
	sess, err := m.Store.Get(c)
	if err != nil {
		return false
	}

	authed, ok := sess.Get(authKey).(bool)
	return ok && authed
}

// Authenticate marks the current session as an authenticated admin.
func (m Middleware) Authenticate(c *fiber.Ctx) error {
	log := m.log.Function("Authenticate")

	sess, err := m.Store.Get(c)
	if err != nil {
		return log.Err("failed to get session", err)
	}

	sess.Set(authKey, true)
	if err := sess.Save(); err != nil {
		return log.Err("failed to save session", err)
	}

	return nil
}

func (m Middleware) Invalidate(c *fiber.Ctx) error {
	log := m.log.Function("Invalidate")

	sess, err := m.Store.Get(c)
	if err != nil {
		return log.Err("failed to get session", err)
	}

	if err := sess.Destroy(); err != nil {
		return log.Err("failed to destroy session", err)
	}

	return nil
}

// RequireAuth gates admin-only routes: unauthenticated callers are redirected
// to the login form rather than erroring.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	if !m.IsAuthenticated(c) {
		return c.Redirect("/admin", fiber.StatusFound)
	}

	return c.Next()
}

package main

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer application.Close()

	engine := html.New("./views", ".html")

	server := fiber.New(fiber.Config{
		AppName: "lead-capture",
		Views:   engine,
	})

	server.Use(recoverer.New())
	server.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(application.Config.SessionSecret),
	}))
	server.Static("/", "./public")

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", application.Config.Port)
	log.Info("Server running", "addr", addr)
	if err := server.Listen(addr); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}

// cookieKey derives the base64 32-byte key encryptcookie expects from the
// configured session secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

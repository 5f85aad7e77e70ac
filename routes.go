package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"gitlab.com/deployo/ai-backend/config"
	"gitlab.com/deployo/ai-backend/handler/relay"
	"gitlab.com/deployo/ai-backend/internal/ai/vendor"
	"gitlab.com/deployo/ai-backend/middleware"
)

func initFiber(server config.Server) *fiber.App {
	app := fiber.New(
		fiber.Config{
			ReadTimeout:           server.ReadTimeout,
			WriteTimeout:          server.WriteTimeout,
			IdleTimeout:           server.IdleTimeout,
			DisableStartupMessage: true,
			CaseSensitive:         true,
			StrictRouting:         true,
		},
	)
	app.Use(fiberrecover.New())
	// any origin; credentials stay off since they cannot pair with "*"
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "",
	}))
	app.Use(middleware.SetHeaderID())
	app.Use(middleware.OTelFiberMiddleware(server.Name))
	app.Use(middleware.AuditLogger())
	return app
}

func registerRoutes(app *fiber.App, serviceName string, v *vendor.Vendor, version int64) {
	app.Get("/", relay.NewStatusHandler())

	generate := relay.NewGenerateHandler(v.Generate)
	app.Post("/generate/", generate)
	app.Post("/generate", generate)

	group := app.Group(fmt.Sprintf("/%s/api/v1", serviceName))
	group.Get("/health", relay.NewHealthHandler(version, v.Provider, v.Model))
}

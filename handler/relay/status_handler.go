package relay

import (
	"github.com/gofiber/fiber/v2"
	"gitlab.com/deployo/ai-backend/api"
)

const StatusMessage = "Deployo AI Backend is running"

func NewStatusHandler() fiber.Handler {
	body := fiber.Map{"message": StatusMessage}
	return func(c *fiber.Ctx) error {
		return api.Ok(c, body)
	}
}

// NewHealthHandler reports the deploy version and the vendor this process relays to.
func NewHealthHandler(version int64, vendor string, model string) fiber.Handler {
	body := fiber.Map{
		"version": version,
		"vendor":  vendor,
		"model":   model,
	}
	return func(c *fiber.Ctx) error {
		return api.Ok(c, body)
	}
}

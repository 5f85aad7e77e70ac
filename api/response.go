package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func Ok(c *fiber.Ctx, body interface{}) error {
	return c.Status(http.StatusOK).JSON(body)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Detail: message})
}

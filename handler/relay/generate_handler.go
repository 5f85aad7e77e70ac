package relay

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gitlab.com/deployo/ai-backend/api"
	"gitlab.com/deployo/ai-backend/internal/ai"
	"gitlab.com/deployo/ai-backend/internal/logz"
	"gitlab.com/deployo/ai-backend/middleware"
	"go.uber.org/zap"
)

// NewGenerateHandler relays one prompt to generate and answers with its text.
// A nil generate is treated as an unconfigured vendor.
func NewGenerateHandler(generate ai.GenerateTextFunc) fiber.Handler {
	if generate == nil {
		generate = ai.NotConfigured("GenAI")
	}
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		reqID := c.Get(middleware.HeaderRequestID)
		logger := logz.WithTrace(ctx, logz.NewLogger(), reqID)

		var req ai.PromptRequest
		if err := c.BodyParser(&req); err != nil {
			logger.Debug("invalid prompt request", zap.Error(err))
			return api.BadRequest(c, "invalid prompt request")
		}
		if req.Prompt == nil {
			return api.BadRequest(c, "prompt is required")
		}

		text, err := generate(ctx, logger, *req.Prompt)
		if err != nil {
			if errors.Is(err, ai.ErrNotConfigured) {
				logger.Error("generate rejected", zap.Error(err))
				return api.InternalError(c, err.Error())
			}
			logger.Error("Error during GenAI interaction", zap.Error(err))
			return api.InternalError(c, fmt.Sprintf("Error generating text: %v", err))
		}
		return api.Ok(c, ai.GenAIResponse{Response: text})
	}
}

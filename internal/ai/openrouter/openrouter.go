package openrouter

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/revrost/go-openrouter"
	"gitlab.com/deployo/ai-backend/internal/ai"
	"go.uber.org/zap"
)

const (
	Vendor       = "OpenRouter"
	DefaultModel = "google/gemini-pro-1.5"
)

func Open(apiKey string, baseURL string, httpClient *http.Client) *openrouter.Client {
	cfg := openrouter.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return openrouter.NewClientWithConfig(*cfg)
}

func SendTextAndGetText(client *openrouter.Client, model string, systemInstruction string) ai.GenerateTextFunc {
	if model == "" {
		model = DefaultModel
	}
	return func(ctx context.Context, logger *zap.Logger, prompt string) (string, error) {
		messages := []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{Text: systemInstruction},
			},
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: prompt},
			},
		}

		logger.Debug("openrouter chat completion", zap.String("model", model))
		resp, err := client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
		})
		if err != nil {
			logger.Error("openrouter chat completion failed", zap.String("model", model), zap.Error(err))
			return "", errors.Wrap(err, "openrouter chat completion")
		}
		if len(resp.Choices) == 0 {
			logger.Warn("openrouter returned no choices", zap.String("model", model))
			return "", nil
		}
		return resp.Choices[0].Message.Content.Text, nil
	}
}

package gemini

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"gitlab.com/deployo/ai-backend/internal/ai"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	Vendor       = "Google GenAI"
	DefaultModel = "gemini-1.5-pro-latest"
	mimePlain    = "text/plain"
)

func Open(ctx context.Context, apiKey string, baseURL string, httpClient *http.Client) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}
	return client, nil
}

func SendTextAndGetText(client *genai.Client, model string, systemInstruction string) ai.GenerateTextFunc {
	if model == "" {
		model = DefaultModel
	}
	return func(ctx context.Context,
		logger *zap.Logger,
		prompt string,
	) (string, error) {
		contents := []*genai.Content{
			{Parts: []*genai.Part{{Text: prompt}}, Role: genai.RoleUser},
		}
		config := &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			ResponseMIMEType:  mimePlain,
		}
		logger.Debug("Gemini GenerateContent", zap.String("model", model), zap.Int("prompt_bytes", len(prompt)))
		response, err := client.Models.GenerateContent(ctx, model, contents, config)
		if err != nil {
			logger.Error("Gemini GenerateContent error", zap.String("model", model), zap.Error(err))
			return "", errors.Wrap(err, "gemini generate content")
		}
		return response.Text(), nil
	}
}

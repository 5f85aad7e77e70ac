package gpt

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
	"gitlab.com/deployo/ai-backend/internal/ai"
	"go.uber.org/zap"
)

const (
	Vendor       = "OpenAI"
	DefaultModel = string(openai.ChatModelGPT4oMini)
)

// Open builds a client that never retries; a failed call surfaces as is.
func Open(apiKey string, baseURL string, httpClient *http.Client) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return openai.NewClient(opts...)
}

func SendTextAndGetText(client *openai.Client, model string, systemInstruction string) ai.GenerateTextFunc {
	if model == "" {
		model = DefaultModel
	}
	return func(ctx context.Context, logger *zap.Logger, prompt string) (string, error) {
		params := openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemInstruction),
				openai.UserMessage(prompt),
			}),
			Model: openai.F(openai.ChatModel(model)),
		}

		logger.Debug("chat completion", zap.String("model", model), zap.Int("prompt_bytes", len(prompt)))
		chatCompletion, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			logger.Error("chat completion failed", zap.String("model", model), zap.Error(err))
			return "", errors.Wrap(err, "openai chat completion")
		}
		if len(chatCompletion.Choices) == 0 {
			logger.Warn("chat completion returned no choices", zap.String("model", model))
			return "", nil
		}

		return chatCompletion.Choices[0].Message.Content, nil
	}
}

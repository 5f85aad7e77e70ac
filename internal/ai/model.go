package ai

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PromptRequest is the body of a generate call. Prompt is a pointer so an
// absent field can be told apart from an empty one.
type PromptRequest struct {
	Prompt *string `json:"prompt"`
}

type GenAIResponse struct {
	Response string `json:"response"`
}

// GenerateTextFunc sends one prompt to the configured vendor and returns the
// generated text. An empty string is a valid result.
type GenerateTextFunc func(ctx context.Context, logger *zap.Logger, prompt string) (string, error)

var ErrNotConfigured = errors.New("vendor api key not configured")

type ConfigError struct {
	Vendor string
}

func (e *ConfigError) Error() string {
	return e.Vendor + " API key not configured."
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}

// NotConfigured stands in for a vendor whose credential was missing at startup.
func NotConfigured(vendor string) GenerateTextFunc {
	err := &ConfigError{Vendor: vendor}
	return func(ctx context.Context, logger *zap.Logger, prompt string) (string, error) {
		return "", err
	}
}

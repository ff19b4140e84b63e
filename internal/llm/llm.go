package llm

import (
	"context"
	"errors"
	"fmt"

	"mindgrid/pkg/config"

	"go.uber.org/zap"
)

// ErrDisabled is returned by New when no model backend is configured.
var ErrDisabled = errors.New("ai provider disabled")

// Provider is a completion backend for the analysis core.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
	Close() error
}

// Error wraps a failed provider call.
type Error struct {
	Provider string
	Op       string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Provider, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Provider, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds the provider named by cfg.AI.Provider. It returns ErrDisabled
// for "none" and when the selected provider has no credentials.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Provider, error) {
	switch cfg.AI.Provider {
	case "", "none":
		return nil, ErrDisabled
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is empty", ErrDisabled)
		}
		return NewGemini(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, logger)
	case "openai":
		if cfg.AI.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is empty", ErrDisabled)
		}
		return NewOpenAI(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel, cfg.AI.OpenAIBaseURL, logger), nil
	case "bedrock":
		return NewBedrock(ctx, cfg.AI.BedrockRegion, cfg.AI.BedrockModel, logger)
	case "gigachat":
		if cfg.GigaChat.APIKey == "" {
			return nil, fmt.Errorf("%w: GIGACHAT_API_KEY is empty", ErrDisabled)
		}
		return NewGigaChat(ctx, &cfg.GigaChat, logger)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

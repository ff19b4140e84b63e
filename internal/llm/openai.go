package llm

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAI completes prompts through the chat completions API of OpenAI or
// any compatible server reachable at baseURL.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAI(apiKey, model, baseURL string, logger *zap.Logger) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", &Error{Provider: o.Name(), Op: "Complete", Message: "chat completion failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: o.Name(), Op: "Complete", Message: "no response choices returned"}
	}

	o.logger.Debug("OpenAI completion finished",
		zap.String("model", o.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) Close() error { return nil }

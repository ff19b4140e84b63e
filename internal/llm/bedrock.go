package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

const (
	defaultBedrockModel = "anthropic.claude-3-haiku-20240307-v1:0"
	anthropicVersion    = "bedrock-2023-05-31"
	bedrockMaxTokens    = 2000
)

// ModelInvoker is the subset of the Bedrock runtime client used here.
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float32            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// Bedrock completes prompts with an Anthropic model hosted on AWS Bedrock.
type Bedrock struct {
	client  ModelInvoker
	modelID string
	logger  *zap.Logger
}

func NewBedrock(ctx context.Context, region, modelID string, logger *zap.Logger) (*Bedrock, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewBedrockWithClient(bedrockruntime.NewFromConfig(cfg), modelID, logger), nil
}

func NewBedrockWithClient(client ModelInvoker, modelID string, logger *zap.Logger) *Bedrock {
	if modelID == "" {
		modelID = defaultBedrockModel
	}
	return &Bedrock{client: client, modelID: modelID, logger: logger}
}

func (b *Bedrock) Name() string { return "bedrock" }

func (b *Bedrock) Complete(ctx context.Context, prompt string) (string, error) {
	if !strings.HasPrefix(b.modelID, "anthropic.") {
		return "", &Error{Provider: b.Name(), Op: "Complete", Message: "unsupported model " + b.modelID}
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        bedrockMaxTokens,
		Temperature:      0.1,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &Error{Provider: b.Name(), Op: "Complete", Message: "failed to marshal request", Err: err}
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", &Error{Provider: b.Name(), Op: "Complete", Message: "invoke model failed", Err: err}
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", &Error{Provider: b.Name(), Op: "Complete", Message: "failed to unmarshal response", Err: err}
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &Error{Provider: b.Name(), Op: "Complete", Message: "empty response"}
	}

	b.logger.Debug("Bedrock completion finished", zap.String("model", b.modelID), zap.String("stop_reason", resp.StopReason))
	return text.String(), nil
}

func (b *Bedrock) Close() error { return nil }

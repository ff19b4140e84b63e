package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const geminiOCRPrompt = `Extract all text from this document exactly as it appears.
Return only the text, without comments or explanations.
If nothing is readable, return an empty string.`

// Gemini completes prompts with a Google Gemini model. It can also read
// text from images and PDFs.
type Gemini struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Gemini, error) {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	logger.Info("Using Gemini model", zap.String("model", modelName))
	return &Gemini{client: client, modelName: modelName, logger: logger}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, "Complete", genai.Text(prompt))
}

// ExtractText sends the file at path to the model and returns the text it
// reads from it.
func (g *Gemini) ExtractText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return g.generate(ctx, "ExtractText",
		genai.Text(geminiOCRPrompt),
		genai.Blob{MIMEType: mimeTypeFor(path), Data: data},
	)
}

func (g *Gemini) generate(ctx context.Context, op string, parts ...genai.Part) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &Error{Provider: g.Name(), Op: op, Message: "generate content failed", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &Error{Provider: g.Name(), Op: op, Message: "no candidates returned"}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mindgrid/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	gigaChatBaseURL  = "https://gigachat.devices.sberbank.ru/api/v1"
	gigaChatOAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"

	gigaChatSystemInstruction = `You are a careful document and journal analysis assistant.
Always answer with exactly the JSON structure the user asks for and nothing else.`

	gigaChatOCRPrompt = `Extract all text from this document.
Return ONLY the text it contains, without comments, explanations or error messages.
Keep headings, lists and table rows. If nothing is readable, return an empty string.`
)

var errUnauthorized = errors.New("gigachat: unauthorized")

// refusalPhrases mark answers where the model declined instead of reading
// the attachment.
var refusalPhrases = []string{
	"cannot help",
	"cannot process",
	"please provide",
	"не могу помочь",
	"не могу обработать",
	"не могу извлечь",
	"предоставьте содержимое",
}

// GigaChat completes prompts through the gigago SDK and reads images and
// PDFs through the GigaChat files + vision REST API.
type GigaChat struct {
	client     *gigago.Client
	model      *gigago.GenerativeModel
	cfg        *config.GigaChatConfig
	httpClient *http.Client
	baseURL    string
	oauthURL   string
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
}

func NewGigaChat(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChat, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	httpClient := &http.Client{}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "GigaChat"
	}
	model := client.GenerativeModel(modelName)
	model.SystemInstruction = gigaChatSystemInstruction
	model.Temperature = 0.3

	logger.Info("Using GigaChat model", zap.String("model", modelName))

	return &GigaChat{
		client:     client,
		model:      model,
		cfg:        cfg,
		httpClient: httpClient,
		baseURL:    gigaChatBaseURL,
		oauthURL:   gigaChatOAuthURL,
		logger:     logger,
	}, nil
}

func (g *GigaChat) Name() string { return "gigachat" }

func (g *GigaChat) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", &Error{Provider: g.Name(), Op: "Complete", Message: "failed to generate response", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: g.Name(), Op: "Complete", Message: "no response from model"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ExtractText uploads the file at path and asks the vision model for its
// text.
func (g *GigaChat) ExtractText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	var text string
	err = g.withToken(ctx, func(token string) error {
		fileID, err := g.uploadFile(ctx, token, data, filepath.Base(path))
		if err != nil {
			return err
		}
		text, err = g.vision(ctx, token, fileID)
		return err
	})
	if err != nil {
		return "", &Error{Provider: g.Name(), Op: "ExtractText", Message: "vision extraction failed", Err: err}
	}

	lower := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			g.logger.Warn("GigaChat refused to extract text", zap.String("message", text))
			return "", &Error{Provider: g.Name(), Op: "ExtractText", Message: "model returned a refusal: " + text}
		}
	}

	g.logger.Info("Text extracted via GigaChat vision", zap.Int("text_length", len(text)))
	return text, nil
}

// withToken runs fn with a cached access token and retries it once with a
// fresh token when the API answers 401.
func (g *GigaChat) withToken(ctx context.Context, fn func(token string) error) error {
	token, err := g.token(ctx, false)
	if err != nil {
		return err
	}
	err = fn(token)
	if !errors.Is(err, errUnauthorized) {
		return err
	}

	g.logger.Info("GigaChat access token rejected, refreshing")
	if token, err = g.token(ctx, true); err != nil {
		return err
	}
	return fn(token)
}

func (g *GigaChat) token(ctx context.Context, refresh bool) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && !refresh {
		return g.accessToken, nil
	}

	form := url.Values{}
	form.Set("scope", g.cfg.Scope)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}
	rqUID := uuid.New().String()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	// the key is issued already base64 encoded
	req.Header.Set("Authorization", "Basic "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(body))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}
	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	g.accessToken = oauthResp.AccessToken
	return g.accessToken, nil
}

func (g *GigaChat) uploadFile(ctx context.Context, token string, data []byte, fileName string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" lets the file be attached to completion requests
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", mimeTypeFor(fileName))
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var uploadResp struct {
		ID string `json:"id"`
	}
	if err := g.do(req, &uploadResp); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return uploadResp.ID, nil
}

func (g *GigaChat) vision(ctx context.Context, token, fileID string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"model": g.modelName(),
		"messages": []map[string]interface{}{
			{
				"role":        "user",
				"content":     gigaChatOCRPrompt,
				"attachments": []string{fileID},
			},
		},
		"temperature": 0.1,
		"stream":      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var visionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := g.do(req, &visionResp); err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("no response from vision API")
	}
	return strings.TrimSpace(visionResp.Choices[0].Message.Content), nil
}

func (g *GigaChat) do(req *http.Request, out interface{}) error {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errUnauthorized
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return fmt.Errorf("file too large (413)")
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (g *GigaChat) modelName() string {
	if g.cfg.Model != "" {
		return g.cfg.Model
	}
	return "GigaChat"
}

func (g *GigaChat) Close() error {
	if g.client != nil {
		g.client.Close()
	}
	return nil
}

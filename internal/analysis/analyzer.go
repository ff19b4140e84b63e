package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

var (
	ErrNoCompleter = errors.New("ai completer unavailable")
	ErrNoJSON      = errors.New("completion contains no json object")
)

// Completer turns a prompt into raw model output.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type Option func(*Analyzer)

// WithSanitizer replaces the default sanitizer.
func WithSanitizer(s *Sanitizer) Option {
	return func(a *Analyzer) {
		a.sanitizer = s
	}
}

// WithTextLimit shortens source text before it is embedded in a prompt.
func WithTextLimit(limit func(string) string) Option {
	return func(a *Analyzer) {
		a.limit = limit
	}
}

// Analyzer runs the AI extraction path and substitutes the local fallback
// whenever the model is unavailable, fails, or answers without usable JSON.
// It never returns an error.
type Analyzer struct {
	completer Completer
	sanitizer *Sanitizer
	limit     func(string) string
	logger    *zap.Logger
}

// NewAnalyzer builds an Analyzer. completer may be nil, in which case every
// call goes straight to the local fallbacks.
func NewAnalyzer(completer Completer, logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		completer: completer,
		sanitizer: defaultSanitizer,
		limit:     func(s string) string { return s },
		logger:    logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeDocument extracts a Record from OCR text.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, text string) Record {
	if utf8.RuneCountInString(text) < MinTextLength {
		return LocalAnalyze(text)
	}

	candidate, err := a.completeJSON(ctx, documentPrompt(a.limit(text)))
	if err != nil {
		a.logger.Warn("Document analysis falling back to local extraction", zap.Error(err))
		return LocalAnalyze(text)
	}

	rec := a.sanitizer.Sanitize(candidate)
	a.logger.Debug("Document analysis completed",
		zap.String("category", string(rec.Category)),
		zap.String("document_type", string(rec.DocumentType)),
	)
	return rec
}

// completeJSON treats a failed call and an answer without a JSON object
// the same way: both come back as an error.
func (a *Analyzer) completeJSON(ctx context.Context, prompt string) (map[string]any, error) {
	if a.completer == nil {
		return nil, ErrNoCompleter
	}

	out, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	obj, ok := ExtractJSON(out)
	if !ok {
		return nil, ErrNoJSON
	}
	return obj, nil
}

func documentPrompt(text string) string {
	return fmt.Sprintf(`You are a document analysis system. Extract structured fields from the document text.

Return ONLY JSON exactly like:

{
  "documentType": "%s",
  "category": "%s",
  "summary": "Short summary of what this document is",
  "provider": "The issuing authority or company",
  "idNumber": "ID / account / reference number, or null",
  "amount": "number or null",
  "issueDate": "YYYY-MM-DD or null",
  "expiryDate": "YYYY-MM-DD or null",
  "dueDate": "YYYY-MM-DD or null"
}

Document Text:
%s
`, joinDocumentTypes(" | "), joinCategories(" | "), text)
}

func joinCategories(sep string) string {
	parts := make([]string, len(Categories))
	for i, c := range Categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, sep)
}

func joinDocumentTypes(sep string) string {
	parts := make([]string, len(DocumentTypes))
	for i, t := range DocumentTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, sep)
}

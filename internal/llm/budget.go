package llm

import (
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const (
	budgetEncoding = "cl100k_base"
	// runesPerToken approximates tokens when no encoding is available.
	runesPerToken = 4
)

// TokenBudget trims document text so that a prompt stays under a token
// limit. Without a loaded encoding it falls back to a rune estimate.
type TokenBudget struct {
	maxTokens int
	encoding  *tiktoken.Tiktoken
}

// NewTokenBudget loads the cl100k_base encoding. maxTokens <= 0 disables
// truncation.
func NewTokenBudget(maxTokens int, logger *zap.Logger) *TokenBudget {
	b := &TokenBudget{maxTokens: maxTokens}
	if maxTokens <= 0 {
		return b
	}

	encoding, err := tiktoken.GetEncoding(budgetEncoding)
	if err != nil {
		logger.Warn("Token encoding unavailable, using rune estimate",
			zap.String("encoding", budgetEncoding),
			zap.Error(err),
		)
		return b
	}
	b.encoding = encoding
	return b
}

func (b *TokenBudget) MaxTokens() int {
	return b.maxTokens
}

// Count returns the number of tokens in text.
func (b *TokenBudget) Count(text string) int {
	if b.encoding == nil {
		n := len([]rune(text))
		return (n + runesPerToken - 1) / runesPerToken
	}
	return len(b.encoding.Encode(text, nil, nil))
}

// Truncate returns text cut down to the budget.
func (b *TokenBudget) Truncate(text string) string {
	if b.maxTokens <= 0 || text == "" {
		return text
	}

	if b.encoding == nil {
		runes := []rune(text)
		limit := b.maxTokens * runesPerToken
		if len(runes) <= limit {
			return text
		}
		return string(runes[:limit])
	}

	tokens := b.encoding.Encode(text, nil, nil)
	if len(tokens) <= b.maxTokens {
		return text
	}
	return b.encoding.Decode(tokens[:b.maxTokens])
}

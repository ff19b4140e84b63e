package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billText = "Electricity Bill\nTotal: $150.00\nDue 2025-03-01\nAccount No: AB12345"

func staticCompleter(out string, err error) (Completer, *int) {
	calls := 0
	return CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return out, err
	}), &calls
}

func TestAnalyzeDocumentSanitizesModelOutput(t *testing.T) {
	completer, calls := staticCompleter(
		"Sure! ```json\n{\"documentType\":\"bill\",\"category\":\"Utilities\",\"summary\":\"Power bill\","+
			"\"provider\":\"City Power\",\"amount\":\"$1,234.50\",\"dueDate\":\"2025-03-01\"}\n```", nil)
	a := NewAnalyzer(completer, nil)

	rec := a.AnalyzeDocument(context.Background(), billText)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, CategoryFinancial, rec.Category)
	assert.Equal(t, DocumentTypeBill, rec.DocumentType)
	assert.Equal(t, "Power bill", rec.Summary)
	assert.Equal(t, "City Power", rec.Provider)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, 1234.5, *rec.Amount)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, 2025, rec.DueDate.Year())
}

func TestAnalyzeDocumentFallsBack(t *testing.T) {
	local := LocalAnalyze(billText)

	cases := map[string]Completer{
		"nil completer": nil,
		"model error":   CompleterFunc(func(context.Context, string) (string, error) { return "", errors.New("quota exceeded") }),
		"no json":       CompleterFunc(func(context.Context, string) (string, error) { return "I cannot help with that.", nil }),
		"broken json":   CompleterFunc(func(context.Context, string) (string, error) { return `{"category": "Health",}`, nil }),
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rec := NewAnalyzer(c, nil).AnalyzeDocument(context.Background(), billText)
			assert.Equal(t, local, rec)
		})
	}
}

func TestAnalyzeDocumentShortTextSkipsModel(t *testing.T) {
	completer, calls := staticCompleter(`{"category":"Health"}`, nil)
	a := NewAnalyzer(completer, nil)

	for _, in := range []string{"", "abc", "abcd"} {
		rec := a.AnalyzeDocument(context.Background(), in)
		assert.Equal(t, LocalAnalyze(in), rec)
	}
	assert.Equal(t, 0, *calls)
}

func TestAnalyzeDocumentCountsPaddedText(t *testing.T) {
	completer, calls := staticCompleter(`{"category":"Health"}`, nil)
	a := NewAnalyzer(completer, nil)

	rec := a.AnalyzeDocument(context.Background(), "  abcd  ")

	assert.Equal(t, 1, *calls)
	assert.Equal(t, CategoryHealth, rec.Category)
}

func TestAnalyzeDocumentPrompt(t *testing.T) {
	var got string
	a := NewAnalyzer(CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return `{}`, nil
	}), nil, WithTextLimit(func(s string) string { return strings.ToUpper(s) }))

	rec := a.AnalyzeDocument(context.Background(), "some scanned letter")

	assert.Contains(t, got, "SOME SCANNED LETTER")
	for _, c := range Categories {
		assert.Contains(t, got, string(c))
	}
	assert.Equal(t, CategoryPersonal, rec.Category)
	assert.Equal(t, DefaultSummary, rec.Summary)
}

func TestAnalyzeDocumentCustomSanitizer(t *testing.T) {
	completer, _ := staticCompleter(`{"category":"Medical"}`, nil)
	a := NewAnalyzer(completer, nil, WithSanitizer(NewSanitizer(map[string]Category{"Medical": CategoryHealth})))

	rec := a.AnalyzeDocument(context.Background(), "prescription refill")
	assert.Equal(t, CategoryHealth, rec.Category)
}

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmptyCandidate(t *testing.T) {
	for _, c := range []map[string]any{nil, {}} {
		rec := Sanitize(c)
		assert.Equal(t, DocumentTypeOther, rec.DocumentType)
		assert.Equal(t, CategoryPersonal, rec.Category)
		assert.Equal(t, DefaultSummary, rec.Summary)
		assert.Equal(t, DefaultProvider, rec.Provider)
		assert.Nil(t, rec.IDNumber)
		assert.Nil(t, rec.Amount)
		assert.Nil(t, rec.IssueDate)
		assert.Nil(t, rec.DueDate)
		assert.Nil(t, rec.ExpiryDate)
	}
}

func TestSanitizeCategory(t *testing.T) {
	cases := map[any]Category{
		"Health":     CategoryHealth,
		"Vehicle":    CategoryVehicle,
		"Utilities":  CategoryFinancial,
		"Utility":    CategoryFinancial,
		"Work":       CategoryFinancial,
		"Academic":   CategoryFinancial,
		"Other":      CategoryPersonal,
		"financial":  CategoryPersonal,
		"":           CategoryPersonal,
		float64(3):   CategoryPersonal,
		true:         CategoryPersonal,
		"Government": CategoryGovernment,
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(map[string]any{"category": in}).Category, "input %v", in)
	}
}

func TestSanitizeDocumentType(t *testing.T) {
	assert.Equal(t, DocumentTypeWarranty, Sanitize(map[string]any{"documentType": "warranty"}).DocumentType)
	assert.Equal(t, DocumentTypeOther, Sanitize(map[string]any{"documentType": "id_card"}).DocumentType)
	assert.Equal(t, DocumentTypeOther, Sanitize(map[string]any{"documentType": []any{"bill"}}).DocumentType)
}

func TestSanitizeCustomSubstitutions(t *testing.T) {
	s := NewSanitizer(map[string]Category{"Medical": CategoryHealth, "Bogus": Category("Nope")})
	assert.Equal(t, CategoryHealth, s.Sanitize(map[string]any{"category": "Medical"}).Category)
	assert.Equal(t, CategoryPersonal, s.Sanitize(map[string]any{"category": "Bogus"}).Category)
	assert.Equal(t, CategoryPersonal, s.Sanitize(map[string]any{"category": "Utilities"}).Category)
}

func TestParseAmount(t *testing.T) {
	require.NotNil(t, ParseAmount("$1,234.50"))
	assert.Equal(t, 1234.5, *ParseAmount("$1,234.50"))
	assert.Nil(t, ParseAmount("N/A"))
	require.NotNil(t, ParseAmount(float64(42)))
	assert.Equal(t, 42.0, *ParseAmount(float64(42)))
	assert.Equal(t, 42.0, *ParseAmount(42))
	assert.Equal(t, 1.2, *ParseAmount("1.2.3"))
	assert.Equal(t, 0.5, *ParseAmount("USD .5"))
	assert.Nil(t, ParseAmount("."))
	assert.Nil(t, ParseAmount(""))
	assert.Nil(t, ParseAmount(nil))
	assert.Nil(t, ParseAmount(true))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-03-01", "01/03/2025", "2025-03-01T00:00:00Z", "March 1, 2025"} {
		got := ParseDate(in)
		require.NotNil(t, got, in)
		assert.True(t, want.Equal(*got), in)
	}
	assert.Nil(t, ParseDate("null"))
	assert.Nil(t, ParseDate("soon"))
	assert.Nil(t, ParseDate(20250301))
	assert.Nil(t, ParseDate(time.Time{}))
}

func TestSanitizeGarbageFields(t *testing.T) {
	rec := Sanitize(map[string]any{
		"category":     map[string]any{"x": 1},
		"documentType": 7,
		"summary":      "  Power bill  ",
		"provider":     "null",
		"idNumber":     float64(998877),
		"amount":       "N/A",
		"dueDate":      "2025-13-45",
		"expiryDate":   "2026-01-31",
		"extra":        []any{1, 2, 3},
	})
	assert.Equal(t, CategoryPersonal, rec.Category)
	assert.Equal(t, DocumentTypeOther, rec.DocumentType)
	assert.Equal(t, "Power bill", rec.Summary)
	assert.Equal(t, DefaultProvider, rec.Provider)
	require.NotNil(t, rec.IDNumber)
	assert.Equal(t, "998877", *rec.IDNumber)
	assert.Nil(t, rec.Amount)
	assert.Nil(t, rec.DueDate)
	require.NotNil(t, rec.ExpiryDate)
	assert.Equal(t, 2026, rec.ExpiryDate.Year())
}

func TestSanitizeIdempotent(t *testing.T) {
	candidates := []map[string]any{
		{},
		{"category": "Utilities", "documentType": "bill", "amount": "$99.90", "dueDate": "2025-03-01"},
		{"category": "Health", "summary": "Prescription", "provider": "City Clinic", "idNumber": "RX-12345",
			"issueDate": "2024-12-01T10:30:00Z", "expiryDate": "01/06/2025"},
		{"category": 12, "documentType": nil, "summary": "null", "amount": float64(-3)},
	}
	for _, c := range candidates {
		first := Sanitize(c)
		second := Sanitize(first.Candidate())
		assert.Equal(t, first, second)
	}
}

func TestSanitizeIdempotentWithLocalTime(t *testing.T) {
	now := time.Now()
	first := Sanitize(map[string]any{"expiryDate": now, "dueDate": &now})
	second := Sanitize(first.Candidate())
	assert.Equal(t, first, second)

	require.NotNil(t, first.ExpiryDate)
	assert.Equal(t, time.UTC, first.ExpiryDate.Location())
	assert.True(t, now.Equal(*first.ExpiryDate))
	require.NotNil(t, first.DueDate)
	assert.Equal(t, time.UTC, first.DueDate.Location())
}

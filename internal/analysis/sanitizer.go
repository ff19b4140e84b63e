package analysis

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reNonNumeric    = regexp.MustCompile(`[^0-9.]`)
	reLeadingNumber = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// DefaultCategorySubstitutions returns the stock mapping of out-of-set
// categories commonly produced by models.
func DefaultCategorySubstitutions() map[string]Category {
	return map[string]Category{
		"Utilities": CategoryFinancial,
		"Utility":   CategoryFinancial,
		"Work":      CategoryFinancial,
		"Academic":  CategoryFinancial,
	}
}

// Sanitizer coerces loosely typed candidates into Records. It is immutable
// once built and safe for concurrent use.
type Sanitizer struct {
	substitutions map[string]Category
}

// NewSanitizer builds a Sanitizer over a private copy of substitutions.
// Substitution targets outside the category set are ignored.
func NewSanitizer(substitutions map[string]Category) *Sanitizer {
	subs := make(map[string]Category, len(substitutions))
	for from, to := range substitutions {
		if to.Valid() {
			subs[from] = to
		}
	}
	return &Sanitizer{substitutions: subs}
}

var defaultSanitizer = NewSanitizer(DefaultCategorySubstitutions())

// Sanitize runs the default sanitizer.
func Sanitize(candidate map[string]any) Record {
	return defaultSanitizer.Sanitize(candidate)
}

// Sanitize never fails; unknown enum values fall back to defaults and
// malformed numbers or dates become nil.
func (s *Sanitizer) Sanitize(candidate map[string]any) Record {
	rec := Record{
		DocumentType: DocumentTypeOther,
		Category:     CategoryPersonal,
		Summary:      DefaultSummary,
		Provider:     DefaultProvider,
	}

	if v, ok := stringValue(candidate["category"]); ok {
		rec.Category = s.category(v)
	}
	if v, ok := stringValue(candidate["documentType"]); ok && DocumentType(v).Valid() {
		rec.DocumentType = DocumentType(v)
	}
	if v, ok := stringValue(candidate["summary"]); ok {
		rec.Summary = v
	}
	if v, ok := stringValue(candidate["provider"]); ok {
		rec.Provider = v
	}
	if v, ok := stringValue(candidate["idNumber"]); ok {
		rec.IDNumber = &v
	}

	rec.Amount = ParseAmount(candidate["amount"])
	rec.IssueDate = ParseDate(candidate["issueDate"])
	rec.DueDate = ParseDate(candidate["dueDate"])
	rec.ExpiryDate = ParseDate(candidate["expiryDate"])

	return rec
}

func (s *Sanitizer) category(v string) Category {
	if Category(v).Valid() {
		return Category(v)
	}
	if mapped, ok := s.substitutions[v]; ok {
		return mapped
	}
	return CategoryPersonal
}

// ParseAmount accepts numbers as-is and strips strings down to digits and
// dots before reading the leading decimal. Anything else yields nil.
func ParseAmount(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		m := reLeadingNumber.FindString(reNonNumeric.ReplaceAllString(t, ""))
		if m == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseDate reads a date from text in any of the accepted layouts or from a
// time.Time. Zero and unparsable values yield nil. Results are in UTC.
func ParseDate(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		d := t.UTC()
		return &d
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		d := t.UTC()
		return &d
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return &d
			}
		}
	}
	return nil
}

// stringValue returns the trimmed text of v; empty strings and the literal
// "null" count as absent.
func stringValue(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = formatAmount(t)
	case json.Number:
		s = t.String()
	default:
		return "", false
	}
	if s == "" || strings.EqualFold(s, "null") {
		return "", false
	}
	return s, true
}

package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// MinTextLength is the shortest text worth sending to a model.
	MinTextLength = 5

	maxProviderLength = 30
	unknownProvider   = "Unknown Provider"
	unreadableSummary = "Unreadable"
)

var (
	reCurrencyAmount = regexp.MustCompile(`[$£€]\s*(\d[\d,]*(?:\.\d+)?)`)
	reTotalAmount    = regexp.MustCompile(`(?i)Total[:\s]+([\d.,]+)`)
	reDate           = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}`)
	reIdentifier     = regexp.MustCompile(`(?i)(ID|Account|Invoice|Ref)\s*(No|#)?\s*[:.]?\s*([A-Z0-9-]{5,})`)
)

// categoryKeywords is scanned in order; the first hit wins.
var categoryKeywords = []struct {
	words    []string
	category Category
}{
	{[]string{"bill", "invoice"}, CategoryFinancial},
	{[]string{"medical", "doctor"}, CategoryHealth},
	{[]string{"vehicle", "license"}, CategoryVehicle},
	{[]string{"government"}, CategoryGovernment},
}

// LocalAnalyze derives a Record from raw text with pattern matching only.
// It accepts any input. Only the empty string yields the unreadable record.
func LocalAnalyze(text string) Record {
	if text == "" {
		return Record{
			DocumentType: DocumentTypeOther,
			Category:     CategoryPersonal,
			Summary:      unreadableSummary,
			Provider:     unknownProvider,
		}
	}

	category := detectCategory(strings.ToLower(text))
	provider := detectProvider(text)

	docType := DocumentTypeOther
	if category == CategoryFinancial {
		docType = DocumentTypeBill
	}

	return Record{
		DocumentType: docType,
		Category:     category,
		Summary:      fmt.Sprintf("Scanned %s Document from %s", category, provider),
		Provider:     provider,
		IDNumber:     detectIdentifier(text),
		Amount:       detectAmount(text),
		DueDate:      detectDate(text),
	}
}

func detectAmount(text string) *float64 {
	m := reCurrencyAmount.FindStringSubmatch(text)
	if m == nil {
		m = reTotalAmount.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	return ParseAmount(strings.ReplaceAll(m[1], ",", ""))
}

func detectDate(text string) *time.Time {
	m := reDate.FindString(text)
	if m == "" {
		return nil
	}
	return ParseDate(m)
}

func detectProvider(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) > 3 {
			return truncateRunes(line, maxProviderLength)
		}
	}
	return unknownProvider
}

func detectIdentifier(text string) *string {
	m := reIdentifier.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	id := m[3]
	return &id
}

func detectCategory(lower string) Category {
	for _, rule := range categoryKeywords {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.category
			}
		}
	}
	return CategoryPersonal
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

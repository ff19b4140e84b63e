package dto

import "time"

// AnalysisResponse is the flat view of what was extracted from a document.
type AnalysisResponse struct {
	DocumentType string     `json:"documentType"`
	Category     string     `json:"category"`
	Summary      string     `json:"summary"`
	Provider     string     `json:"provider"`
	IDNumber     *string    `json:"idNumber"`
	Amount       *float64   `json:"amount"`
	IssueDate    *time.Time `json:"issueDate"`
	DueDate      *time.Time `json:"dueDate"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Priority     string     `json:"priority"`
}

type DocumentResponse struct {
	ID            string           `json:"id"`
	FileName      string           `json:"fileName"`
	FileURL       string           `json:"fileUrl"`
	MimeType      string           `json:"mimeType"`
	FileSize      int64            `json:"fileSize"`
	ExtractedText string           `json:"extractedText,omitempty"`
	Analysis      AnalysisResponse `json:"analysis"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type UploadDocumentResponse struct {
	Document         DocumentResponse `json:"document"`
	RemindersCreated int              `json:"remindersCreated"`
}

type DocumentStatsResponse struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
	ByPriority map[string]int `json:"byPriority"`
}

// AnalyzeTextRequest carries raw document text.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

type OCRResponse struct {
	FileName string `json:"fileName"`
	Text     string `json:"text"`
	Length   int    `json:"length"`
}

package models

import (
	"time"

	"mindgrid/internal/analysis"

	"github.com/google/uuid"
)

// Document is an uploaded file together with the fields extracted from it.
type Document struct {
	ID            uuid.UUID             `db:"id"`
	UserID        uuid.UUID             `db:"user_id"`
	FileName      string                `db:"file_name"`
	StorageKey    string                `db:"storage_key"`
	FileURL       string                `db:"file_url"`
	MimeType      string                `db:"mime_type"`
	FileSize      int64                 `db:"file_size"`
	ExtractedText string                `db:"extracted_text"`
	DocumentType  analysis.DocumentType `db:"document_type"`
	Category      analysis.Category     `db:"category"`
	Summary       string                `db:"summary"`
	Provider      string                `db:"provider"`
	IDNumber      *string               `db:"id_number"`
	Amount        *float64              `db:"amount"`
	IssueDate     *time.Time            `db:"issue_date"`
	DueDate       *time.Time            `db:"due_date"`
	ExpiryDate    *time.Time            `db:"expiry_date"`
	Priority      analysis.Priority     `db:"priority"`
	CreatedAt     time.Time             `db:"created_at"`
	UpdatedAt     time.Time             `db:"updated_at"`
}

// Apply copies an extracted record onto the document.
func (d *Document) Apply(rec analysis.Record) {
	d.DocumentType = rec.DocumentType
	d.Category = rec.Category
	d.Summary = rec.Summary
	d.Provider = rec.Provider
	d.IDNumber = rec.IDNumber
	d.Amount = rec.Amount
	d.IssueDate = rec.IssueDate
	d.DueDate = rec.DueDate
	d.ExpiryDate = rec.ExpiryDate
}

// Record returns the extracted fields as an analysis record.
func (d *Document) Record() analysis.Record {
	return analysis.Record{
		DocumentType: d.DocumentType,
		Category:     d.Category,
		Summary:      d.Summary,
		Provider:     d.Provider,
		IDNumber:     d.IDNumber,
		Amount:       d.Amount,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		ExpiryDate:   d.ExpiryDate,
	}
}

// DocumentStats aggregates a user's documents.
type DocumentStats struct {
	Total      int
	ByCategory map[analysis.Category]int
	ByPriority map[analysis.Priority]int
}

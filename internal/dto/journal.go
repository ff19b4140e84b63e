package dto

import (
	"encoding/json"
	"time"

	"mindgrid/internal/analysis"
)

type CreateJournalRequest struct {
	Content   string     `json:"content"`
	QuickMood *string    `json:"quickMood"`
	Date      *time.Time `json:"date"`
}

type AnalyzeJournalRequest struct {
	Content string `json:"content"`
}

type JournalResponse struct {
	ID         string          `json:"id"`
	Content    string          `json:"content"`
	QuickMood  *string         `json:"quickMood"`
	Mood       *string         `json:"mood"`
	Summary    string          `json:"summary"`
	EntryDate  time.Time       `json:"entryDate"`
	AIAnalysis json.RawMessage `json:"aiAnalysis,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type CreateJournalResponse struct {
	Message        string                   `json:"message"`
	Journal        JournalResponse          `json:"journal"`
	AIAnalysis     analysis.JournalAnalysis `json:"aiAnalysis"`
	GeneratedTasks []TaskResponse           `json:"generatedTasks"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

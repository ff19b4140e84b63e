package models

import (
	"time"

	"github.com/google/uuid"
)

type Journal struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Content   string    `db:"content"`
	QuickMood *string   `db:"quick_mood"`
	Mood      *string   `db:"mood"`
	Summary   string    `db:"summary"`
	EntryDate time.Time `db:"entry_date"`
	// AIAnalysis is the raw JSON of whatever the model (or the fallback)
	// produced for this entry.
	AIAnalysis []byte    `db:"ai_analysis"`
	CreatedAt  time.Time `db:"created_at"`
}

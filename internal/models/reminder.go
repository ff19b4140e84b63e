package models

import (
	"time"

	"github.com/google/uuid"
)

type ReminderType string

const ReminderTypeDueDate ReminderType = "DUE_DATE"

type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "PENDING"
	ReminderStatusDone    ReminderStatus = "DONE"
)

type Reminder struct {
	ID           uuid.UUID      `db:"id"`
	UserID       uuid.UUID      `db:"user_id"`
	DocumentID   *uuid.UUID     `db:"document_id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	ReminderDate time.Time      `db:"reminder_date"`
	Type         ReminderType   `db:"type"`
	Status       ReminderStatus `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
}

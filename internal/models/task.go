package models

import (
	"time"

	"mindgrid/internal/analysis"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

type TaskSource string

const (
	TaskSourceUser TaskSource = "user"
	TaskSourceAI   TaskSource = "ai"
)

type Task struct {
	ID          uuid.UUID         `db:"id"`
	UserID      uuid.UUID         `db:"user_id"`
	Title       string            `db:"title"`
	Description string            `db:"description"`
	DueDate     *time.Time        `db:"due_date"`
	Priority    analysis.Priority `db:"priority"`
	Status      TaskStatus        `db:"status"`
	Source      TaskSource        `db:"source"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

// TaskFilter narrows a task listing. Empty fields match everything.
type TaskFilter struct {
	Status   TaskStatus
	Priority analysis.Priority
}

type TaskCounts struct {
	Total        int
	Completed    int
	Pending      int
	HighPriority int
}

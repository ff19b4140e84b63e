package service

import (
	"context"
	"errors"
	"time"

	"mindgrid/internal/models"

	"github.com/google/uuid"
)

// ErrValidation marks a request that is missing or has malformed input.
var ErrValidation = errors.New("validation failed")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	Stats(ctx context.Context, userID uuid.UUID) (*models.DocumentStats, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, rem *models.Reminder) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Reminder, error)
	DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) (int64, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	CreateMany(ctx context.Context, tasks []*models.Task) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)
	Upcoming(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Counts(ctx context.Context, userID uuid.UUID) (*models.TaskCounts, error)
}

type JournalRepository interface {
	Create(ctx context.Context, j *models.Journal) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Journal, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Journal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

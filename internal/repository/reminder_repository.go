package repository

import (
	"context"

	"mindgrid/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var reminderColumns = []string{
	"id", "user_id", "document_id", "title", "description", "reminder_date", "type", "status", "created_at",
}

type ReminderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReminderRepository(db *pgxpool.Pool, logger *zap.Logger) *ReminderRepository {
	return &ReminderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReminderRepository) Create(ctx context.Context, rem *models.Reminder) error {
	query := squirrel.Insert("reminders").
		Columns(reminderColumns...).
		Values(rem.ID, rem.UserID, rem.DocumentID, rem.Title, rem.Description, rem.ReminderDate, rem.Type, rem.Status, rem.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// ListByUserID returns the user's reminders, soonest first.
func (r *ReminderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Reminder, error) {
	query := squirrel.Select(reminderColumns...).
		From("reminders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reminder_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []*models.Reminder{}
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.DocumentID, &rem.Title, &rem.Description, &rem.ReminderDate, &rem.Type, &rem.Status, &rem.CreatedAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, &rem)
	}

	return reminders, rows.Err()
}

func (r *ReminderRepository) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) (int64, error) {
	query := squirrel.Delete("reminders").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package repository

import (
	"context"

	"mindgrid/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var journalColumns = []string{
	"id", "user_id", "content", "quick_mood", "mood", "summary", "entry_date", "ai_analysis", "created_at",
}

type JournalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewJournalRepository(db *pgxpool.Pool, logger *zap.Logger) *JournalRepository {
	return &JournalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *JournalRepository) Create(ctx context.Context, j *models.Journal) error {
	query := squirrel.Insert("journals").
		Columns(journalColumns...).
		Values(j.ID, j.UserID, j.Content, j.QuickMood, j.Mood, j.Summary, j.EntryDate, j.AIAnalysis, j.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *JournalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Journal, error) {
	query := squirrel.Select(journalColumns...).
		From("journals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	j, err := scanJournal(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return j, nil
}

// ListRecent returns at most limit entries, newest first.
func (r *JournalRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Journal, error) {
	query := squirrel.Select(journalColumns...).
		From("journals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
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

	journals := []*models.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

func (r *JournalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("journals").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJournal(row pgx.Row) (*models.Journal, error) {
	var j models.Journal
	err := row.Scan(&j.ID, &j.UserID, &j.Content, &j.QuickMood, &j.Mood, &j.Summary, &j.EntryDate, &j.AIAnalysis, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

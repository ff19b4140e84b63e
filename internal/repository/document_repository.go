package repository

import (
	"context"

	"mindgrid/internal/analysis"
	"mindgrid/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var documentColumns = []string{
	"id", "user_id", "file_name", "storage_key", "file_url", "mime_type", "file_size", "extracted_text",
	"document_type", "category", "summary", "provider", "id_number", "amount",
	"issue_date", "due_date", "expiry_date", "priority", "created_at", "updated_at",
}

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := squirrel.Insert("documents").
		Columns(documentColumns...).
		Values(
			doc.ID, doc.UserID, doc.FileName, doc.StorageKey, doc.FileURL, doc.MimeType, doc.FileSize, doc.ExtractedText,
			doc.DocumentType, doc.Category, doc.Summary, doc.Provider, doc.IDNumber, doc.Amount,
			doc.IssueDate, doc.DueDate, doc.ExpiryDate, doc.Priority, doc.CreatedAt, doc.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return doc, nil
}

// ListByUserID returns the user's documents, newest first.
func (r *DocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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

	documents := []*models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("documents").
		Where(squirrel.Eq{"id": id}).
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

func (r *DocumentRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("documents").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Stats counts the user's documents by category and by priority.
func (r *DocumentRepository) Stats(ctx context.Context, userID uuid.UUID) (*models.DocumentStats, error) {
	stats := &models.DocumentStats{
		ByCategory: map[analysis.Category]int{},
		ByPriority: map[analysis.Priority]int{},
	}

	byCategory, err := r.groupCount(ctx, userID, "category")
	if err != nil {
		return nil, err
	}
	for k, n := range byCategory {
		stats.ByCategory[analysis.Category(k)] = n
		stats.Total += n
	}

	byPriority, err := r.groupCount(ctx, userID, "priority")
	if err != nil {
		return nil, err
	}
	for k, n := range byPriority {
		stats.ByPriority[analysis.Priority(k)] = n
	}

	return stats, nil
}

func (r *DocumentRepository) groupCount(ctx context.Context, userID uuid.UUID, column string) (map[string]int, error) {
	sql, args, err := groupCountQuery("documents", column, userID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

func groupCountQuery(table, column string, userID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(column, "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy(column).
		PlaceholderFormat(squirrel.Dollar)
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.FileName, &doc.StorageKey, &doc.FileURL, &doc.MimeType, &doc.FileSize, &doc.ExtractedText,
		&doc.DocumentType, &doc.Category, &doc.Summary, &doc.Provider, &doc.IDNumber, &doc.Amount,
		&doc.IssueDate, &doc.DueDate, &doc.ExpiryDate, &doc.Priority, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

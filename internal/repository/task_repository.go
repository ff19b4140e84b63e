package repository

import (
	"context"
	"time"

	"mindgrid/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var taskColumns = []string{
	"id", "user_id", "title", "description", "due_date", "priority", "status", "source", "created_at", "updated_at",
}

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.CreateMany(ctx, []*models.Task{task})
}

// CreateMany inserts every task in a single statement, so either all of
// them are stored or none.
func (r *TaskRepository) CreateMany(ctx context.Context, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	query := squirrel.Insert("tasks").
		Columns(taskColumns...).
		PlaceholderFormat(squirrel.Dollar)
	for _, t := range tasks {
		query = query.Values(t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.Source, t.CreatedAt, t.UpdatedAt)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// GetByID only finds tasks owned by userID.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	query := squirrel.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	task, err := scanTask(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	sql, args, err := taskListQuery(userID, filter).ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, sql, args)
}

// Upcoming returns up to limit tasks due within [from, to], soonest first.
func (r *TaskRepository) Upcoming(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*models.Task, error) {
	query := squirrel.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"due_date": from}).
		Where(squirrel.LtOrEq{"due_date": to}).
		OrderBy("due_date ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, sql, args)
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := squirrel.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("due_date", task.DueDate).
		Set("priority", task.Priority).
		Set("status", task.Status).
		Set("updated_at", task.UpdatedAt).
		Where(squirrel.Eq{"id": task.ID, "user_id": task.UserID}).
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

func (r *TaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("tasks").
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

func (r *TaskRepository) Counts(ctx context.Context, userID uuid.UUID) (*models.TaskCounts, error) {
	query := squirrel.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'COMPLETED')",
		"COUNT(*) FILTER (WHERE status = 'PENDING')",
		"COUNT(*) FILTER (WHERE priority = 'HIGH')",
	).
		From("tasks").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c models.TaskCounts
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.Total, &c.Completed, &c.Pending, &c.HighPriority); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *TaskRepository) query(ctx context.Context, sql string, args []interface{}) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// taskListQuery orders by due date with undated tasks last, then newest.
func taskListQuery(userID uuid.UUID, filter models.TaskFilter) squirrel.SelectBuilder {
	where := squirrel.Eq{"user_id": userID}
	if filter.Status != "" {
		where["status"] = filter.Status
	}
	if filter.Priority != "" {
		where["priority"] = filter.Priority
	}

	return squirrel.Select(taskColumns...).
		From("tasks").
		Where(where).
		OrderBy("due_date ASC NULLS LAST", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status, &t.Source, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

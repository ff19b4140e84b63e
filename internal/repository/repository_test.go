package repository

import (
	"errors"
	"fmt"
	"testing"

	"mindgrid/internal/analysis"
	"mindgrid/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505"}), ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), mapError(fk))
}

func TestTaskListQuery(t *testing.T) {
	userID := uuid.New()

	sql, args, err := taskListQuery(userID, models.TaskFilter{}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM tasks WHERE user_id = $1")
	assert.Contains(t, sql, "ORDER BY due_date ASC NULLS LAST, created_at DESC")
	// uuid.UUID is a driver.Valuer, so the builder emits its string form.
	assert.Equal(t, []interface{}{userID.String()}, args)

	sql, args, err = taskListQuery(userID, models.TaskFilter{
		Status:   models.TaskStatusPending,
		Priority: analysis.PriorityHigh,
	}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE priority = $1 AND status = $2 AND user_id = $3")
	require.Len(t, args, 3)
	assert.EqualValues(t, "HIGH", args[0])
	assert.EqualValues(t, "PENDING", args[1])
	assert.Equal(t, userID.String(), args[2])
}

func TestGroupCountQuery(t *testing.T) {
	userID := uuid.New()
	sql, args, err := groupCountQuery("documents", "category", userID).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT category, COUNT(*) FROM documents WHERE user_id = $1 GROUP BY category", sql)
	assert.Equal(t, []interface{}{userID.String()}, args)
}

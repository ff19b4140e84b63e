package api

import (
	"context"
	"io"
	"sync"
	"time"

	"mindgrid/internal/models"
	"mindgrid/internal/repository"

	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memTasks struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]models.Task
}

func (m *memTasks) Create(ctx context.Context, task *models.Task) error {
	return m.CreateMany(ctx, []*models.Task{task})
}

func (m *memTasks) CreateMany(ctx context.Context, tasks []*models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		m.tasks[t.ID] = *t
	}
	return nil
}

func (m *memTasks) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (m *memTasks) List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Task{}
	for _, t := range m.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		t := t
		out = append(out, &t)
	}
	return out, nil
}

func (m *memTasks) Upcoming(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*models.Task, error) {
	return []*models.Task{}, nil
}

func (m *memTasks) Update(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[task.ID]; !ok || t.UserID != task.UserID {
		return repository.ErrNotFound
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memTasks) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memTasks) Counts(ctx context.Context, userID uuid.UUID) (*models.TaskCounts, error) {
	tasks, _ := m.List(ctx, userID, models.TaskFilter{})
	c := &models.TaskCounts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c, nil
}

type memJournals struct {
	mu       sync.Mutex
	journals map[uuid.UUID]models.Journal
}

func (m *memJournals) Create(ctx context.Context, j *models.Journal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journals[j.ID] = *j
	return nil
}

func (m *memJournals) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.journals[id]
	if !ok || j.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (m *memJournals) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Journal{}
	for _, j := range m.journals {
		if j.UserID == userID && len(out) < limit {
			j := j
			out = append(out, &j)
		}
	}
	return out, nil
}

func (m *memJournals) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.journals[id]; !ok || j.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.journals, id)
	return nil
}

type memDocuments struct{}

func (memDocuments) Create(ctx context.Context, doc *models.Document) error { return nil }

func (memDocuments) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return nil, repository.ErrNotFound
}

func (memDocuments) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	return []*models.Document{}, nil
}

func (memDocuments) Delete(ctx context.Context, id uuid.UUID) error { return repository.ErrNotFound }

func (memDocuments) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) { return 0, nil }

func (memDocuments) Stats(ctx context.Context, userID uuid.UUID) (*models.DocumentStats, error) {
	return &models.DocumentStats{}, nil
}

type memReminders struct{}

func (memReminders) Create(ctx context.Context, rem *models.Reminder) error { return nil }

func (memReminders) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Reminder, error) {
	return []*models.Reminder{}, nil
}

func (memReminders) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) (int64, error) {
	return 0, nil
}

// plainReader echoes uploaded bytes back as the extracted text.
type plainReader struct{}

func (plainReader) ExtractTextFromReader(ctx context.Context, r io.Reader, fileName, mimeType string) (string, error) {
	data, err := io.ReadAll(r)
	return string(data), err
}

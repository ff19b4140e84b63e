package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"mindgrid/internal/analysis"
	"mindgrid/internal/models"
	"mindgrid/internal/repository"
	"mindgrid/internal/storage"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeDocumentRepo struct {
	docs      map[uuid.UUID]*models.Document
	createErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*models.Document{}}
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocumentRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range f.docs {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	docs, _ := f.ListByUserID(ctx, userID)
	return len(docs), nil
}

func (f *fakeDocumentRepo) Stats(ctx context.Context, userID uuid.UUID) (*models.DocumentStats, error) {
	stats := &models.DocumentStats{
		ByCategory: map[analysis.Category]int{},
		ByPriority: map[analysis.Priority]int{},
	}
	docs, _ := f.ListByUserID(ctx, userID)
	for _, d := range docs {
		stats.Total++
		stats.ByCategory[d.Category]++
		stats.ByPriority[d.Priority]++
	}
	return stats, nil
}

type fakeReminderRepo struct {
	reminders []*models.Reminder
	createErr error
}

func (f *fakeReminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *rem
	f.reminders = append(f.reminders, &cp)
	return nil
}

func (f *fakeReminderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Reminder, error) {
	var out []*models.Reminder
	for _, r := range f.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReminderDate.Before(out[j].ReminderDate) })
	return out, nil
}

func (f *fakeReminderRepo) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) (int64, error) {
	var kept []*models.Reminder
	var removed int64
	for _, r := range f.reminders {
		if r.DocumentID != nil && *r.DocumentID == documentID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.reminders = kept
	return removed, nil
}

type fakeTaskRepo struct {
	tasks     map[uuid.UUID]*models.Task
	createErr error
	batches   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*models.Task{}}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	return f.CreateMany(ctx, []*models.Task{task})
}

func (f *fakeTaskRepo) CreateMany(ctx context.Context, tasks []*models.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	if len(tasks) == 0 {
		return nil
	}
	f.batches++
	for _, t := range tasks {
		cp := *t
		f.tasks[t.ID] = &cp
	}
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTaskRepo) Upcoming(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID != userID || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	t, ok := f.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return repository.ErrNotFound
	}
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) Counts(ctx context.Context, userID uuid.UUID) (*models.TaskCounts, error) {
	var c models.TaskCounts
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		c.Total++
		switch t.Status {
		case models.TaskStatusCompleted:
			c.Completed++
		case models.TaskStatusPending:
			c.Pending++
		}
		if t.Priority == analysis.PriorityHigh {
			c.HighPriority++
		}
	}
	return &c, nil
}

type fakeJournalRepo struct {
	journals  map[uuid.UUID]*models.Journal
	createErr error
	listErr   error
}

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{journals: map[uuid.UUID]*models.Journal{}}
}

func (f *fakeJournalRepo) Create(ctx context.Context, j *models.Journal) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *j
	f.journals[j.ID] = &cp
	return nil
}

func (f *fakeJournalRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Journal, error) {
	j, ok := f.journals[id]
	if !ok || j.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJournalRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Journal, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Journal
	for _, j := range f.journals {
		if j.UserID == userID {
			cp := *j
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeJournalRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	j, ok := f.journals[id]
	if !ok || j.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.journals, id)
	return nil
}

// memStore is an in-memory storage.ObjectStore.
type memStore struct {
	objects map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Save(ctx context.Context, owner, fileName string, r io.Reader) (storage.Object, error) {
	if m.saveErr != nil {
		return storage.Object{}, m.saveErr
	}
	name, err := storage.SanitizeFileName(fileName)
	if err != nil {
		return storage.Object{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.Object{}, err
	}
	key := owner + "/" + uuid.NewString() + "_" + name
	m.objects[key] = data
	return storage.Object{Key: key, Size: int64(len(data)), MimeType: "image/png"}, nil
}

func (m *memStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStore) URL(key string) string {
	return "/uploads/" + key
}

// fakeReader returns canned OCR output.
type fakeReader struct {
	text  string
	err   error
	calls int
}

func (f *fakeReader) ExtractTextFromReader(ctx context.Context, r io.Reader, fileName, mimeType string) (string, error) {
	f.calls++
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return f.text, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

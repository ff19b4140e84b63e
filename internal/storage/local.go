package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps objects under a directory on the local filesystem.
type LocalStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates baseDir if needed. baseURL prefixes the keys handed
// out by URL, e.g. "/uploads" when the directory is served statically.
func NewLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir, baseURL: baseURL}, nil
}

func (s *LocalStore) Dir() string {
	return s.baseDir
}

func (s *LocalStore) Save(ctx context.Context, owner, fileName string, r io.Reader) (Object, error) {
	key, err := newKey(owner, fileName)
	if err != nil {
		return Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	mimeType, body, err := sniff(r)
	if err != nil {
		return Object{}, err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return Object{}, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("open file: %w", err)
	}

	size, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return Object{}, fmt.Errorf("write body: %w", err)
	}

	return Object{Key: key, Size: size, MimeType: mimeType}, nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.path(ctx, key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open object: %w", err)
	}
	return f, nil
}

// Delete treats a missing object as already deleted.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.path(ctx, key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return joinURL(s.baseURL, key)
}

func (s *LocalStore) path(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), nil
}

var _ ObjectStore = (*LocalStore)(nil)

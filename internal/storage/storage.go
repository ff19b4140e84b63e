package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"mindgrid/pkg/config"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidKey  = errors.New("invalid storage key")
	ErrInvalidName = errors.New("invalid file name")
)

const (
	sniffLen        = 512
	defaultMimeType = "application/octet-stream"
	maxNameLength   = 120
)

// Object describes a stored file.
type Object struct {
	Key      string
	Size     int64
	MimeType string
}

// ObjectStore saves and retrieves uploaded files.
type ObjectStore interface {
	Save(ctx context.Context, owner string, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL is the address clients use to fetch the object.
	URL(key string) string
}

// SanitizeFileName flattens path separators and rejects traversal.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", ErrInvalidName
	}
	if r := []rune(s); len(r) > maxNameLength {
		s = string(r[len(r)-maxNameLength:])
	}
	return s, nil
}

// newKey builds "<owner>/<random>_<name>".
func newKey(owner, fileName string) (string, error) {
	name, err := SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	owner = strings.Trim(strings.TrimSpace(owner), "/")
	if owner == "" || strings.Contains(owner, "..") || strings.ContainsAny(owner, `/\`) {
		return "", ErrInvalidKey
	}
	return path.Join(owner, uuid.NewString()+"_"+name), nil
}

// cleanKey rejects absolute keys and keys escaping the store root.
func cleanKey(key string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(key, "\\", "/"))
	if clean == "." || strings.HasPrefix(clean, "..") || strings.HasPrefix(clean, "/") {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// sniff reads the head of r to detect its content type and returns a reader
// that still yields the whole stream.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	head = head[:n]
	mimeType := defaultMimeType
	if n > 0 {
		mimeType = http.DetectContentType(head)
	}
	return mimeType, io.MultiReader(bytes.NewReader(head), r), nil
}

func joinURL(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// New builds the store selected by cfg.Type ("local" or "s3").
func New(ctx context.Context, cfg *config.StorageConfig) (ObjectStore, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStore(cfg.Dir, cfg.PublicBaseURL)
	case "s3":
		return NewS3Store(ctx, cfg.Region, cfg.Bucket, cfg.Prefix, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

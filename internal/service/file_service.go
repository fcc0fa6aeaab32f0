package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"agentdesk/internal/errors"
	"agentdesk/internal/storage"
)

const (
	uploadPrefix = "uploads/"
	// maxUploadSize caps a single upload at 10MB.
	maxUploadSize = 10 << 20
	presignExpiry = 15 * time.Minute
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadResult describes one stored upload.
type UploadResult struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// BlobStore is the storage surface the file routes need.
type BlobStore interface {
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// FileService handles uploads and listing against blob storage.
type FileService interface {
	ListFiles(ctx context.Context) ([]storage.Object, error)
	Upload(ctx context.Context, name, contentType string, size int64, body io.Reader) (*UploadResult, error)
	FileURL(ctx context.Context, key string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

type fileService struct {
	store BlobStore
	now   func() time.Time
}

// NewFileService creates a file service over the given blob store.
func NewFileService(store BlobStore) FileService {
	return &fileService{store: store, now: time.Now}
}

func (s *fileService) ListFiles(ctx context.Context) ([]storage.Object, error) {
	return s.store.List(ctx, uploadPrefix)
}

// Upload stores a file under a timestamped, sanitized key.
func (s *fileService) Upload(ctx context.Context, name, contentType string, size int64, body io.Reader) (*UploadResult, error) {
	if size > maxUploadSize {
		return nil, errors.ErrFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s%d-%s", uploadPrefix, s.now().UnixMilli(), unsafeKeyChars.ReplaceAllString(name, "_"))
	if err := s.store.Put(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return &UploadResult{
		Key:  key,
		Name: name,
		Size: size,
		Type: contentType,
	}, nil
}

// FileURL returns a presigned, time-limited download URL for key.
func (s *fileService) FileURL(ctx context.Context, key string) (string, error) {
	return s.store.PresignGet(ctx, key, presignExpiry)
}

func (s *fileService) DeleteFile(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

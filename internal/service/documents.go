package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
)

// Upload is one file submitted for storage.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Documents stores user files in the document bucket.
type Documents struct {
	store  domain.DocumentStore
	logger *slog.Logger
}

// NewDocuments creates the document service. A nil store disables the feature.
func NewDocuments(store domain.DocumentStore, logger *slog.Logger) *Documents {
	return &Documents{store: store, logger: logger}
}

// Upload stores the file under the owner's prefix and resolves its URL.
func (s *Documents) Upload(ctx context.Context, owner string, up Upload) (domain.Document, error) {
	if s.store == nil {
		return domain.Document{}, ErrFeatureDisabled
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return domain.Document{}, ErrUnauthenticated
	}
	if up.Body == nil || up.Size <= 0 {
		return domain.Document{}, &domain.ValidationError{Field: "file", Message: "is required"}
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := domain.DocumentKey(owner, up.Name)
	if err := s.store.Put(ctx, key, up.Body, up.Size, contentType); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	url, err := s.store.URL(ctx, key)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return domain.Document{
		Key:         key,
		Name:        domain.SanitizeFileName(up.Name),
		URL:         url,
		Size:        up.Size,
		ContentType: contentType,
	}, nil
}

// URL resolves a retrievable URL for one of the owner's documents. Keys
// outside the owner's prefix are reported as not found.
func (s *Documents) URL(ctx context.Context, owner, key string) (string, error) {
	if s.store == nil {
		return "", ErrFeatureDisabled
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", ErrUnauthenticated
	}
	if key == "" {
		return "", &domain.ValidationError{Field: "key", Message: "is required"}
	}
	if !strings.HasPrefix(key, owner+"/") {
		return "", fmt.Errorf("document %s: %w", key, domain.ErrNotFound)
	}
	url, err := s.store.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return url, nil
}

package domain

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"
)

// Document describes a blob stored in the document bucket.
type Document struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFileName reduces an uploaded file name to a safe object-name
// segment. An empty result becomes "file".
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

// DocumentKey builds the object key "<owner>/<uuid>-<sanitised name>".
func DocumentKey(owner, name string) string {
	return owner + "/" + newID() + "-" + SanitizeFileName(name)
}

// DocumentStore keeps uploaded blobs and resolves retrievable URLs for them.
type DocumentStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

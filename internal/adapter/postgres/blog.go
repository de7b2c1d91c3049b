// Package postgres stores community blog posts in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/couchcryptid/disaster-helper/internal/domain"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// BlogStore implements domain.BlogStore.
type BlogStore struct {
	db *sql.DB
}

// Open connects to databaseURL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*BlogStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &BlogStore{db: db}, nil
}

// NewBlogStore wraps an existing handle.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// RunMigrations creates the tables if they don't exist.
func (s *BlogStore) RunMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *BlogStore) InsertBlogPost(ctx context.Context, post domain.BlogPost) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blogposts (id, title, url, created_at, created_by) VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.Title, post.URL, post.CreatedAt, post.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert blog post %s: %w", post.ID, err)
	}
	return nil
}

func (s *BlogStore) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, created_at, created_by FROM blogposts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		var p domain.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog posts: %w", err)
	}
	return posts, nil
}

// CheckReadiness pings the database.
func (s *BlogStore) CheckReadiness(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

func (s *BlogStore) Close() error {
	return s.db.Close()
}

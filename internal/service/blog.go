package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
)

// Blog lists and accepts community posts.
type Blog struct {
	store domain.BlogStore
}

// NewBlog creates the blog service. A nil store disables the feature.
func NewBlog(store domain.BlogStore) *Blog {
	return &Blog{store: store}
}

// Feed returns every post, newest first, split into the user's and others'.
func (s *Blog) Feed(ctx context.Context, user string) (domain.BlogFeed, error) {
	if s.store == nil {
		return domain.BlogFeed{}, ErrFeatureDisabled
	}
	posts, err := s.store.ListBlogPosts(ctx)
	if err != nil {
		return domain.BlogFeed{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return domain.SplitBlogPosts(posts, strings.TrimSpace(user)), nil
}

// Publish validates and inserts a post authored by user.
func (s *Blog) Publish(ctx context.Context, user string, in domain.BlogPostInput) (domain.BlogPost, error) {
	if s.store == nil {
		return domain.BlogPost{}, ErrFeatureDisabled
	}
	user = strings.TrimSpace(user)
	if user == "" {
		return domain.BlogPost{}, ErrUnauthenticated
	}
	post, err := domain.NewBlogPost(user, in)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if err := s.store.InsertBlogPost(ctx, post); err != nil {
		return domain.BlogPost{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return post, nil
}

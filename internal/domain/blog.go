package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// blogURLMarker must appear in every shared blog post URL.
const blogURLMarker = "docs.google.com/document"

// BlogPost is a community post linking to a shared document.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// BlogPostInput carries the fields a user submits.
type BlogPostInput struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewBlogPost validates the input and builds a post owned by author.
// The id is "<author>_<unix millis>".
func NewBlogPost(author string, in BlogPostInput) (BlogPost, error) {
	title := strings.TrimSpace(in.Title)
	link := strings.TrimSpace(in.URL)
	switch {
	case title == "":
		return BlogPost{}, required("title")
	case link == "":
		return BlogPost{}, required("url")
	case !strings.Contains(link, blogURLMarker):
		return BlogPost{}, &ValidationError{Field: "url", Message: "must be a Google Docs document link"}
	}

	now := Now()
	return BlogPost{
		ID:        fmt.Sprintf("%s_%d", author, now.UnixMilli()),
		Title:     title,
		URL:       link,
		CreatedAt: now,
		CreatedBy: author,
	}, nil
}

// BlogFeed splits posts into the caller's own and everyone else's,
// preserving order.
type BlogFeed struct {
	Mine   []BlogPost `json:"mine"`
	Others []BlogPost `json:"others"`
}

// SplitBlogPosts partitions posts by author.
func SplitBlogPosts(posts []BlogPost, author string) BlogFeed {
	feed := BlogFeed{Mine: []BlogPost{}, Others: []BlogPost{}}
	for _, p := range posts {
		if author != "" && p.CreatedBy == author {
			feed.Mine = append(feed.Mine, p)
			continue
		}
		feed.Others = append(feed.Others, p)
	}
	return feed
}

// BlogStore persists community posts.
type BlogStore interface {
	InsertBlogPost(ctx context.Context, post BlogPost) error
	// ListBlogPosts returns every post, newest first.
	ListBlogPosts(ctx context.Context) ([]BlogPost, error)
}

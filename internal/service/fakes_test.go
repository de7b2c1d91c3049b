package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/jonboulle/clockwork"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func freezeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	c := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 15, 4, 0, 0, time.UTC))
	domain.SetClock(c)
	t.Cleanup(func() { domain.SetClock(nil) })
	return c
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.AlertEvent
	err    error
}

func (p *recordingPublisher) PublishAlertEvents(_ context.Context, events []domain.AlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

type stubGenerator struct {
	reply   string
	err     error
	history []domain.ChatMessage
	prompt  string
}

func (g *stubGenerator) GenerateReply(_ context.Context, history []domain.ChatMessage, prompt string) (string, error) {
	g.history = history
	g.prompt = prompt
	return g.reply, g.err
}

type stubProvider struct {
	raw domain.RawWeather
	err error
	at  domain.Coordinates
}

func (p *stubProvider) Fetch(_ context.Context, at domain.Coordinates) (domain.RawWeather, error) {
	p.at = at
	return p.raw, p.err
}

type stubGeocoder struct {
	place domain.Place
	err   error
}

func (g stubGeocoder) ReverseGeocode(context.Context, domain.Coordinates) (domain.Place, error) {
	return g.place, g.err
}

type memoryBlogStore struct {
	posts []domain.BlogPost
	err   error
}

func (s *memoryBlogStore) InsertBlogPost(_ context.Context, p domain.BlogPost) error {
	if s.err != nil {
		return s.err
	}
	s.posts = append([]domain.BlogPost{p}, s.posts...)
	return nil
}

func (s *memoryBlogStore) ListBlogPosts(context.Context) ([]domain.BlogPost, error) {
	return s.posts, s.err
}

type memoryDocumentStore struct {
	blobs  map[string][]byte
	putErr error
}

func newMemoryDocumentStore() *memoryDocumentStore {
	return &memoryDocumentStore{blobs: map[string][]byte{}}
}

func (s *memoryDocumentStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return err
	}
	s.blobs[key] = buf.Bytes()
	return nil
}

func (s *memoryDocumentStore) URL(_ context.Context, key string) (string, error) {
	return "https://files.example.com/" + key, nil
}

type recordingSubmitter struct {
	apps []domain.VolunteerApplication
	err  error
}

func (s *recordingSubmitter) SubmitVolunteer(_ context.Context, app domain.VolunteerApplication) error {
	s.apps = append(s.apps, app)
	return s.err
}

type failingBackend struct{ err error }

func (f failingBackend) Load(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingBackend) Save(context.Context, string, []byte) error { return f.err }

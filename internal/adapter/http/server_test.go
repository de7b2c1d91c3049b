package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/disaster-helper/internal/adapter/http"
	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/couchcryptid/disaster-helper/internal/service"
	"github.com/couchcryptid/disaster-helper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type failingProvider struct{}

func (failingProvider) Fetch(context.Context, domain.Coordinates) (domain.RawWeather, error) {
	return domain.RawWeather{}, errors.New("provider down")
}

type memoryBlog struct{ posts []domain.BlogPost }

func (m *memoryBlog) InsertBlogPost(_ context.Context, p domain.BlogPost) error {
	m.posts = append([]domain.BlogPost{p}, m.posts...)
	return nil
}

func (m *memoryBlog) ListBlogPosts(context.Context) ([]domain.BlogPost, error) { return m.posts, nil }

type memoryDocs struct{ blobs map[string]string }

func (m *memoryDocs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	m.blobs[key] = string(b)
	return err
}

func (m *memoryDocs) URL(_ context.Context, key string) (string, error) {
	return "https://files.example.com/" + key, nil
}

type harness struct {
	srv     *httpadapter.Server
	backend *store.Memory
	docs    *memoryDocs
}

func newHarness(t *testing.T, readyErr error, withHosted bool) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	backend := store.NewMemory()
	docs := &memoryDocs{blobs: map[string]string{}}

	svc := httpadapter.Services{
		Alerts:     service.NewAlerts(backend, nil, metrics, logger),
		Resources:  service.NewResources(backend),
		Contacts:   service.NewContacts(backend),
		Profile:    service.NewProfile(backend),
		Chat:       service.NewChat(backend, domain.DefaultKeywordMatcher(), nil, metrics, logger),
		Shop:       service.NewShop(backend, domain.DefaultCatalog(), 599, logger),
		Weather:    service.NewWeather(failingProvider{}, domain.Coordinates{Lat: 40.7128, Lon: -74.006}, metrics, logger),
		SOS:        service.NewSOS("911", nil, logger),
		Blog:       service.NewBlog(nil),
		Documents:  service.NewDocuments(nil, logger),
		Volunteers: service.NewVolunteers(nil),
	}
	if withHosted {
		svc.Blog = service.NewBlog(&memoryBlog{})
		svc.Documents = service.NewDocuments(docs, logger)
	}
	return &harness{
		srv:     httpadapter.NewServer(":0", svc, &mockReadiness{err: readyErr}, logger),
		backend: backend,
		docs:    docs,
	}
}

func (h *harness) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func TestHealthzReturns200(t *testing.T) {
	rec := newHarness(t, nil, false).do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	assert.Equal(t, http.StatusOK, newHarness(t, nil, false).do(t, http.MethodGet, "/readyz", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		newHarness(t, fmt.Errorf("redis unreachable"), false).do(t, http.MethodGet, "/readyz", nil).Code)
}

func TestMetricsReturns200(t *testing.T) {
	rec := newHarness(t, nil, false).do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAlertsLifecycle(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Alert](t, rec), 4)

	rec = h.do(t, http.MethodPost, "/api/alerts", domain.AlertInput{
		Title: "Gas leak", Location: "Elm St", Description: "Leave the area", Severity: domain.SeverityCritical,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Alert](t, rec)

	rec = h.do(t, http.MethodPut, "/api/alerts/"+created.ID, domain.AlertInput{
		Title: "Gas leak contained", Location: "Elm St", Description: "All clear soon",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gas leak contained", decode[domain.Alert](t, rec).Title)

	rec = h.do(t, http.MethodDelete, "/api/alerts/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(t, http.MethodDelete, "/api/alerts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationErrorsAre400(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodPost, "/api/alerts", domain.AlertInput{Location: "x", Description: "y"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title: is required", errorOf(t, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", errorOf(t, rec))

	rec = h.do(t, http.MethodGet, "/api/resources?type=castle", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodPost, "/api/resources",
		domain.ResourceInput{Name: "Gym", Address: "1 School Rd", Phone: "555"}, "X-Session-ID", "alice")
	require.Equal(t, http.StatusCreated, rec.Code)

	alice := decode[[]domain.Resource](t, h.do(t, http.MethodGet, "/api/resources?q=school", nil, "X-Session-ID", "alice"))
	bob := decode[[]domain.Resource](t, h.do(t, http.MethodGet, "/api/resources?q=school", nil, "X-Session-ID", "bob"))
	assert.Len(t, alice, 1)
	assert.Empty(t, bob)
}

func TestEmergencyContactsAre403(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodDelete, "/api/contacts/emergency-1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodPut, "/api/contacts/emergency-2", domain.ContactInput{Name: "x", Phone: "1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	contacts := decode[[]domain.Contact](t, h.do(t, http.MethodGet, "/api/contacts?type=emergency", nil))
	assert.Len(t, contacts, 4)
}

func TestCorruptSnapshotIs500(t *testing.T) {
	h := newHarness(t, nil, false)
	require.NoError(t, h.backend.Save(context.Background(), store.ScopedKey("default", store.KeyContacts), []byte("not json")))

	rec := h.do(t, http.MethodGet, "/api/contacts", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorOf(t, rec), "corrupt snapshot")
}

func TestProfileAndVisited(t *testing.T) {
	h := newHarness(t, nil, false)

	p := domain.ProfileInfo{Name: "Ana", MedicalInfo: domain.MedicalInfo{Allergies: "penicillin"}}
	require.Equal(t, http.StatusOK, h.do(t, http.MethodPut, "/api/profile", p).Code)
	assert.Equal(t, p, decode[domain.ProfileInfo](t, h.do(t, http.MethodGet, "/api/profile", nil)))

	assert.False(t, decode[map[string]bool](t, h.do(t, http.MethodGet, "/api/visited", nil))["visited"])
	require.Equal(t, http.StatusOK, h.do(t, http.MethodPut, "/api/visited", map[string]bool{"visited": true}).Code)
	assert.True(t, decode[map[string]bool](t, h.do(t, http.MethodGet, "/api/visited", nil))["visited"])
}

func TestChatFlow(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodPost, "/api/chat", map[string]string{"content": "what goes in an emergency kit?"})
	require.Equal(t, http.StatusOK, rec.Code)
	reply := decode[service.ChatReply](t, rec)
	assert.Equal(t, service.SourceKeyword, reply.Source)
	assert.Contains(t, reply.Message.Content, "Your emergency kit should include")

	assert.Len(t, decode[[]domain.ChatMessage](t, h.do(t, http.MethodGet, "/api/chat", nil)), 3)
	assert.Len(t, decode[[]domain.ChatMessage](t, h.do(t, http.MethodDelete, "/api/chat", nil)), 1)

	rec = h.do(t, http.MethodPost, "/api/chat", map[string]string{"content": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartFlow(t *testing.T) {
	h := newHarness(t, nil, false)

	assert.Len(t, decode[[]domain.CatalogItem](t, h.do(t, http.MethodGet, "/api/catalog", nil)), 6)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "3"}).Code)
	rec := h.do(t, http.MethodPut, "/api/cart/items/3", map[string]int{"quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[domain.Checkout](t, rec)
	assert.Equal(t, int64(2*3999), out.SubtotalCents)
	assert.Equal(t, int64(2*3999+599), out.TotalCents)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "5"}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "42"}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/api/cart/items", map[string]string{}).Code)

	rec = h.do(t, http.MethodDelete, "/api/cart/items/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[domain.Checkout](t, rec).Lines)
}

func TestWeather(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodGet, "/api/weather?lat=51.5&lon=-0.12", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[service.WeatherResult](t, rec)
	assert.True(t, res.Report.Fallback)
	assert.NotEmpty(t, res.Warning)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/weather?lat=91&lon=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/weather?lat=10", nil).Code)
}

func TestSOS(t *testing.T) {
	h := newHarness(t, nil, false)

	rec := h.do(t, http.MethodPost, "/api/sos", map[string]any{"location": map[string]float64{"lat": 1.5, "lon": 2.25}})
	require.Equal(t, http.StatusOK, rec.Code)
	link := decode[domain.SOSLink](t, rec)
	assert.Equal(t, "https://www.google.com/maps?q=1.5,2.25", link.MapsURL)
	assert.True(t, strings.HasPrefix(link.ComposeURL, "https://api.whatsapp.com/send?phone=911&text="))

	rec = h.do(t, http.MethodPost, "/api/sos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Emergency SOS! I need immediate assistance.", decode[domain.SOSLink](t, rec).Message)
}

func TestSOS_RejectsOutOfRangeLocation(t *testing.T) {
	h := newHarness(t, nil, false)

	tests := []struct {
		name     string
		lat, lon float64
		field    string
	}{
		{"both out of range", 999, -500, "lat"},
		{"latitude too low", -90.5, 0, "lat"},
		{"longitude too high", 10, 180.01, "lon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(t, http.MethodPost, "/api/sos", map[string]any{"location": map[string]float64{"lat": tt.lat, "lon": tt.lon}})
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorOf(t, rec), tt.field)
			assert.NotContains(t, rec.Body.String(), "mapsUrl")
		})
	}

	edge := h.do(t, http.MethodPost, "/api/sos", map[string]any{"location": map[string]float64{"lat": -90, "lon": 180}})
	require.Equal(t, http.StatusOK, edge.Code)
	assert.Equal(t, "https://www.google.com/maps?q=-90,180", decode[domain.SOSLink](t, edge).MapsURL)
}

func TestHostedFeaturesDisabledAre503(t *testing.T) {
	h := newHarness(t, nil, false)

	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/api/blogposts", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/api/documents/url?key=u1/a", nil, "X-User-ID", "u1").Code)
	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodPost, "/api/volunteers",
		domain.VolunteerApplication{Name: "Ana", Email: "ana@example.com", Phone: "555"}).Code)
}

func TestBlogPosts(t *testing.T) {
	h := newHarness(t, nil, true)
	in := domain.BlogPostInput{Title: "Go bag", URL: "https://docs.google.com/document/d/xyz"}

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodPost, "/api/blogposts", in).Code)

	rec := h.do(t, http.MethodPost, "/api/blogposts", in, "X-User-ID", "u1")
	require.Equal(t, http.StatusCreated, rec.Code)

	feed := decode[domain.BlogFeed](t, h.do(t, http.MethodGet, "/api/blogposts", nil, "X-User-ID", "u2"))
	assert.Empty(t, feed.Mine)
	require.Len(t, feed.Others, 1)
	assert.Equal(t, "u1", feed.Others[0].CreatedBy)
}

func TestDocumentUpload(t *testing.T) {
	h := newHarness(t, nil, true)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "insurance policy.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	doc := decode[domain.Document](t, rec)
	assert.True(t, strings.HasPrefix(doc.Key, "u1/"))
	assert.Equal(t, "insurance_policy.pdf", doc.Name)
	assert.Equal(t, "%PDF-1.4", h.docs.blobs[doc.Key])

	rec = h.do(t, http.MethodGet, "/api/documents/url?key="+doc.Key, nil, "X-User-ID", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc.URL, decode[map[string]string](t, rec)["url"])

	rec = h.do(t, http.MethodGet, "/api/documents/url?key="+doc.Key, nil, "X-User-ID", "u2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/documents", nil, "X-User-ID", "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

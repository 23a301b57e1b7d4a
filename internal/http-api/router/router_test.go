package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/http-api/router"
	"bookhub/internal/http-api/service"
	"bookhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore implements both repositories in memory.
type memoryStore struct {
	mu       sync.Mutex
	nextBook int64
	nextRev  int64
	books    map[int64]models.Book
	reviews  map[int64]models.Review
}

func newMemoryStore() *memoryStore {
	return &memoryStore{books: map[int64]models.Book{}, reviews: map[int64]models.Review{}}
}

type memoryBooks struct{ s *memoryStore }
type memoryReviews struct{ s *memoryStore }

func (r memoryBooks) Create(_ context.Context, b *models.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextBook++
	b.ID = r.s.nextBook
	r.s.books[b.ID] = *b
	return nil
}

func (r memoryBooks) sorted(keep func(models.Book) bool) []models.Book {
	out := make([]models.Book, 0)
	for _, b := range r.s.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memoryBooks) GetAll(_ context.Context) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(models.Book) bool { return true }), nil
}

func (r memoryBooks) GetByID(_ context.Context, id int64) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	return &b, nil
}

func (r memoryBooks) Update(_ context.Context, id int64, changes map[string]interface{}) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	for col, v := range changes {
		switch col {
		case "title":
			b.Title = v.(string)
		case "author":
			b.Author = v.(string)
		case "summary":
			s, _ := v.(string)
			b.Summary = &s
		case "genre":
			s, _ := v.(string)
			b.Genre = &s
		case "text_content":
			s, _ := v.(string)
			b.TextContent = &s
		}
	}
	r.s.books[id] = b
	return &b, nil
}

func (r memoryBooks) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return repository.ErrBookNotFound
	}
	delete(r.s.books, id)
	for rid, rv := range r.s.reviews {
		if rv.BookID == id {
			delete(r.s.reviews, rid)
		}
	}
	return nil
}

func (r memoryBooks) FindByGenre(_ context.Context, genre string) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(b models.Book) bool { return b.Genre != nil && *b.Genre == genre }), nil
}

func (r memoryReviews) Create(_ context.Context, rv *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextRev++
	rv.ID = r.s.nextRev
	r.s.reviews[rv.ID] = *rv
	return nil
}

func (r memoryReviews) GetByBook(_ context.Context, bookID int64) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryReviews) GetByID(_ context.Context, id int64) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	return &rv, nil
}

type stubSummarizer struct{ calls int }

func (s *stubSummarizer) Summarize(_ context.Context, text string) (string, error) {
	s.calls++
	return "Summary of " + text, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServer struct {
	engine *gin.Engine
	store  *memoryStore
	sum    *stubSummarizer
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard, err := auth.NewGuardWithHash("admin", string(hash), logger)
	require.NoError(t, err)

	store := newMemoryStore()
	books := memoryBooks{store}
	reviews := memoryReviews{store}
	sum := &stubSummarizer{}

	engine := router.New(router.Dependencies{
		Logger:          logger,
		Guard:           guard,
		DB:              fakePinger{err: pingErr},
		RequestTimeout:  time.Second,
		MetricsEnabled:  true,
		Books:           service.NewBookService(books),
		Reviews:         service.NewReviewService(reviews, books),
		Recommendations: service.NewRecommendationService(books),
		Summaries:       service.NewSummaryService(books, reviews, sum, time.Second, logger),
	})
	return &testServer{engine: engine, store: store, sum: sum}
}

func (s *testServer) call(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.SetBasicAuth("admin", "secret")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestEveryRouteRequiresAuth(t *testing.T) {
	s := newTestServer(t, nil)

	routes := []struct{ method, path, body string }{
		{http.MethodPost, "/books", `{"title":"x","author":"y","genre":"z","year_published":2000}`},
		{http.MethodGet, "/books", ""},
		{http.MethodGet, "/books/1", ""},
		{http.MethodPut, "/books/1", `{}`},
		{http.MethodDelete, "/books/1", ""},
		{http.MethodPost, "/books/1/reviews", `{"user_id":1,"review_text":"x","rating":1}`},
		{http.MethodGet, "/books/1/reviews", ""},
		{http.MethodGet, "/books/1/summary", ""},
		{http.MethodGet, "/recommendations?genre=x", ""},
		{http.MethodPost, "/generate-summary", `{"book_id":1}`},
		{http.MethodGet, "/metrics", ""},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := s.call(t, rt.method, rt.path, rt.body, false)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, auth.Challenge, w.Header().Get("WWW-Authenticate"))
			assert.Equal(t, "Incorrect username or password", decode(t, w)["detail"])
		})
	}
	assert.Empty(t, s.store.books, "rejected requests must not touch the store")
	assert.Zero(t, s.sum.calls)
}

func TestNonexistentBookIs404OnEveryIDRoute(t *testing.T) {
	s := newTestServer(t, nil)

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/books/999", ""},
		{http.MethodPut, "/books/999", `{"title":"x"}`},
		{http.MethodDelete, "/books/999", ""},
		{http.MethodPost, "/books/999/reviews", `{"user_id":1,"review_text":"x","rating":1}`},
		{http.MethodGet, "/books/999/reviews", ""},
		{http.MethodGet, "/books/999/summary", ""},
		{http.MethodPost, "/generate-summary", `{"book_id":999}`},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := s.call(t, rt.method, rt.path, rt.body, true)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Book not found", decode(t, w)["detail"])
		})
	}
}

func TestSummaryScenario(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.call(t, http.MethodPost, "/books", `{"title":"Moby Dick","author":"Herman Melville","genre":"classic","year_published":1851,"text_content":"Call me Ishmael."}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	id := int64(created["id"].(float64))
	assert.Nil(t, created["summary"])

	w = s.call(t, http.MethodGet, "/books/1/summary", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"summary":"","average_rating":0}`, w.Body.String())

	w = s.call(t, http.MethodPost, "/generate-summary", `{"book_id":1}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Summary of Call me Ishmael.", decode(t, w)["summary"])

	w = s.call(t, http.MethodGet, "/books/1", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, float64(id), got["id"])
	assert.Equal(t, "Summary of Call me Ishmael.", got["summary"])
	assert.Equal(t, "Moby Dick", got["title"])
}

func TestCreateBookIgnoresSummary(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","genre":"sci-fi","year_published":1965,"summary":"x"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	assert.Contains(t, created, "summary")
	assert.Nil(t, created["summary"])

	w = s.call(t, http.MethodGet, "/books/1", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["summary"])
}

func TestCreateBookRequiresGenreAndYear(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","year_published":1965}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","genre":"sci-fi"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, s.store.books)
}

func TestGenerateSummaryWithoutText(t *testing.T) {
	s := newTestServer(t, nil)
	s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","genre":"sci-fi","year_published":1965}`, true)

	w := s.call(t, http.MethodPost, "/generate-summary", `{"book_id":1}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No text content available for this book", decode(t, w)["detail"])
	assert.Zero(t, s.sum.calls)
}

func TestReviewsAverageAndCascade(t *testing.T) {
	s := newTestServer(t, nil)
	s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","genre":"sci-fi","year_published":1965}`, true)

	for _, rating := range []string{"4.5", "3.0", "5.0"} {
		w := s.call(t, http.MethodPost, "/books/1/reviews", `{"user_id":1,"review_text":"ok","rating":`+rating+`}`, true)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := s.call(t, http.MethodGet, "/books/1/summary", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 12.5/3, decode(t, w)["average_rating"].(float64), 1e-9)

	w = s.call(t, http.MethodDelete, "/books/1", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book deleted", decode(t, w)["detail"])
	assert.Empty(t, s.store.reviews)
}

func TestPartialUpdateIsIdempotent(t *testing.T) {
	s := newTestServer(t, nil)
	s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"Frank Herbert","genre":"sci-fi","year_published":1965}`, true)

	first := s.call(t, http.MethodPut, "/books/1", `{"summary":"Spice."}`, true)
	second := s.call(t, http.MethodPut, "/books/1", `{"summary":"Spice."}`, true)

	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	got := decode(t, second)
	assert.Equal(t, "Dune", got["title"])
	assert.Equal(t, "sci-fi", got["genre"])
}

func TestRecommendations(t *testing.T) {
	s := newTestServer(t, nil)
	s.call(t, http.MethodPost, "/books", `{"title":"Dune","author":"a","genre":"sci-fi","year_published":1965}`, true)
	s.call(t, http.MethodPost, "/books", `{"title":"Emma","author":"b","genre":"classic","year_published":1815}`, true)
	s.call(t, http.MethodPost, "/books", `{"title":"Neuromancer","author":"c","genre":"sci-fi","year_published":1984}`, true)

	var books []map[string]any
	w := s.call(t, http.MethodGet, "/recommendations?genre=sci-fi", "", true)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Len(t, books, 2)
	for _, b := range books {
		assert.Equal(t, "sci-fi", b["genre"])
	}

	w = s.call(t, http.MethodGet, "/recommendations", "", true)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Len(t, books, 3)

	w = s.call(t, http.MethodGet, "/recommendations?genre=Sci-Fi", "", true)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCheckConnIsPublic(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.call(t, http.MethodGet, "/check-conn", "", false)
	assert.Equal(t, http.StatusOK, w.Code)

	down := newTestServer(t, errors.New("connection refused"))
	w = down.call(t, http.MethodGet, "/check-conn", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	s.call(t, http.MethodGet, "/books", "", true)

	w := s.call(t, http.MethodGet, "/metrics", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "bookhub_http_requests_total"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.call(t, http.MethodGet, "/nope", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

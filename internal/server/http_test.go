package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type fixedStore struct{}

func (fixedStore) List(context.Context) ([]queries.Question, error) {
	return []queries.Question{{ID: 1, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Difficulty: 4, Category: 1}}, nil
}

func (s fixedStore) Search(ctx context.Context, _ string) ([]queries.Question, error) {
	return s.List(ctx)
}

func (s fixedStore) ListByCategory(ctx context.Context, _ int32) ([]queries.Question, error) {
	return s.List(ctx)
}

func (fixedStore) Get(context.Context, int64) (queries.Question, error) {
	return queries.Question{}, repository.ErrNotFound
}

func (fixedStore) Insert(context.Context, queries.InsertQuestionParams) (queries.Question, error) {
	return queries.Question{}, errors.New("read only")
}

func (fixedStore) Delete(context.Context, int64) error {
	return repository.ErrNotFound
}

type fixedCategories struct{}

func (fixedCategories) List(context.Context) ([]queries.Category, error) {
	return []queries.Category{{ID: 1, Type: "Science"}}, nil
}

func (fixedCategories) Get(_ context.Context, id int32) (queries.Category, error) {
	if id == 1 {
		return queries.Category{ID: 1, Type: "Science"}, nil
	}
	return queries.Category{}, repository.ErrNotFound
}

func testCORS() config.CORS {
	return config.CORS{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	}
}

func newTestRouter(t *testing.T, m *metrics.Metrics, pingers ...Pinger) http.Handler {
	t.Helper()
	opts := trivia.ServiceOptions{}
	if m != nil {
		opts.Metrics = m
	}
	svc := trivia.NewService(fixedStore{}, fixedCategories{}, opts)
	return NewRouter(testCORS(), zerolog.Nop(), m, pingers, trivia.NewHTTPHandlers(svc))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTriviaRoutesMounted(t *testing.T) {
	rec := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"categories":{"1":"Science"}}`, rec.Body.String())
}

func TestUnknownPathAndMethod(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/does/not/exist", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":404,"message":"resource not found"}`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodPut, "/categories", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":405,"message":"method not allowed"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, inbound)
	rec = serve(h, req)
	assert.Equal(t, inbound, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	rec = serve(h, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(requestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	cfg := testCORS()
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	h := corsMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight reached the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := serve(h, req)

	assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec = serve(h, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardThroughRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

	rec := serve(newTestRouter(t, nil), req)

	assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSSpecificOrigin(t *testing.T) {
	cfg := testCORS()
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := corsMiddleware(cfg)(next)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := serve(h, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	assert.Equal(t, http.CanonicalHeaderKey(requestIDHeader), http.CanonicalHeaderKey(rec.Header().Get("Access-Control-Expose-Headers")))

	req = httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = serve(h, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverJSON(t *testing.T) {
	r := chi.NewRouter()
	r.Use(requestLogger(zerolog.Nop(), nil))
	r.Use(recoverJSON)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(500), body["error"])
}

func TestPingDependencies(t *testing.T) {
	ok := Pinger{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := Pinger{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: connection refused") }}

	rec := serve(newTestRouter(t, nil, ok), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())

	rec = serve(newTestRouter(t, nil, ok, down), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "upstream error"))

	err := pingDependencies(context.Background(), []Pinger{ok, down})
	assert.ErrorContains(t, err, "redis: dial tcp")
}

func TestMetricsRecordRoutePattern(t *testing.T) {
	m := metrics.New()
	h := newTestRouter(t, m)

	serve(h, httptest.NewRequest(http.MethodGet, "/categories/1/questions", nil))
	serve(h, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"previous_questions":[],"quiz_category":{"id":0}}`)))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `trivia_http_requests_total{method="GET",route="/categories/{id}/questions",status="200"} 1`)
	assert.Contains(t, out, `trivia_quiz_selections_total{outcome="question"} 1`)
}

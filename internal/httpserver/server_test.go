package httpserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hirematch/internal/httpserver"
	"github.com/khrees2412/hirematch/internal/search"
	"github.com/khrees2412/hirematch/pkg/models"
)

type stubStore struct {
	candidates []*models.Candidate
	jobs       map[int]*models.Job
}

func (s *stubStore) FetchCandidates(_ context.Context, includeInactive bool) ([]*models.Candidate, error) {
	out := []*models.Candidate{}
	for _, c := range s.candidates {
		if c.Active || includeInactive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubStore) GetCandidate(_ context.Context, id string) (*models.Candidate, error) {
	for _, c := range s.candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("candidate %s: %w", id, models.ErrNotFound)
}

func (s *stubStore) GetJob(_ context.Context, id int) (*models.Job, error) {
	if job, ok := s.jobs[id]; ok {
		return job, nil
	}
	return nil, fmt.Errorf("job %d: %w", id, models.ErrNotFound)
}

func newTestServer(rateLimit int) http.Handler {
	store := &stubStore{
		candidates: []*models.Candidate{
			{ID: "a", Name: "Ada", Skills: []string{"python"}, Active: true},
			{ID: "b", Name: "Bo", Skills: []string{"go", "postgres"}, SelectedWorkTypes: []string{"remote"}, Active: true},
			{ID: "c", Name: "Cy", Skills: []string{"go"}, Active: false},
		},
		jobs: map[int]*models.Job{
			1: {ID: 1, Title: "Backend", Criteria: map[string]any{"workType": "remote"}},
		},
	}
	svc := search.New(store, store, nil)
	return httpserver.New(svc, store, nil, rateLimit).Router()
}

type searchBody struct {
	Total   int `json:"total"`
	Limit   int `json:"limit"`
	Results []struct {
		Candidate models.Candidate `json:"candidate"`
		Score     int              `json:"score"`
	} `json:"results"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doSearch(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpointRanks(t *testing.T) {
	h := newTestServer(0)

	rec := doSearch(t, h, `{"skills":["Go","Postgres"],"limit":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var body searchBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Limit)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "b", body.Results[0].Candidate.ID)
	assert.Equal(t, 100, body.Results[0].Score)
}

func TestSearchEndpointIncludeInactiveAndJob(t *testing.T) {
	h := newTestServer(0)

	rec := doSearch(t, h, `{"skills":"go","jobId":"1","includeInactive":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body searchBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, "b", body.Results[0].Candidate.ID)
}

func TestSearchEndpointMalformedFieldsAreDropped(t *testing.T) {
	h := newTestServer(0)

	rec := doSearch(t, h, `{"skills":{"nested":true},"salaryRange":"lots","experience":42}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body searchBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	for _, r := range body.Results {
		assert.Equal(t, 0, r.Score)
	}
}

func TestSearchEndpointEmptyBody(t *testing.T) {
	rec := doSearch(t, newTestServer(0), "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSearchEndpointErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "invalid json", body: `{"skills":`, wantCode: http.StatusBadRequest, wantErr: "INVALID_ARGUMENT"},
		{name: "array body", body: `["go"]`, wantCode: http.StatusBadRequest, wantErr: "INVALID_ARGUMENT"},
		{name: "bad limit", body: `{"limit":"lots"}`, wantCode: http.StatusBadRequest, wantErr: "INVALID_ARGUMENT"},
		{name: "negative offset", body: `{"offset":-1}`, wantCode: http.StatusBadRequest, wantErr: "INVALID_ARGUMENT"},
		{name: "unknown job", body: `{"jobId":42}`, wantCode: http.StatusNotFound, wantErr: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doSearch(t, newTestServer(0), tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestSearchEndpointRateLimited(t *testing.T) {
	h := newTestServer(1)

	require.Equal(t, http.StatusOK, doSearch(t, h, `{}`).Code)

	rec := doSearch(t, h, `{}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)
}

func TestCandidateEndpoint(t *testing.T) {
	h := newTestServer(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/candidates/b", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var c models.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "Bo", c.Name)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/candidates/zzz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobEndpoint(t *testing.T) {
	h := newTestServer(0)

	tests := []struct {
		path     string
		wantCode int
	}{
		{path: "/v1/jobs/1", wantCode: http.StatusOK},
		{path: "/v1/jobs/2", wantCode: http.StatusNotFound},
		{path: "/v1/jobs/abc", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.wantCode, rec.Code, tt.path)
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence/memory"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/middleware"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var fixedNow = time.Date(2026, time.April, 15, 9, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	cfg := corrapp.DefaultNumberingConfig()

	numbering := corrapp.NewNumberingService(store.TransactionScope(), store.CounterRepo(), store.CatalogRepo(), cfg, nil,
		corrapp.WithClock(func() time.Time { return fixedNow }))
	archive := corrapp.NewArchiveService(store.TransactionScope(), store.LetterRepo(), store.CatalogRepo(), nil, time.UTC, nil)
	archive.SetClock(func() time.Time { return fixedNow })
	verification := corrapp.NewVerificationService(store.LetterRepo(), store.CatalogRepo(), nil, nil, nil)

	letters := NewLetterHandler(numbering, archive)
	counters := NewCounterHandler(numbering)
	catalog := NewCatalogHandler(corrapp.NewCatalogService(store.CatalogRepo()))
	verify := NewVerifyHandler(verification)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/letters", letters.Issue)
	r.POST("/letters/reserve", letters.Reserve)
	r.GET("/letters", letters.List)
	r.GET("/letters/export", letters.Export)
	r.GET("/letters/stats", letters.Stats)
	r.GET("/letters/lookup", letters.Lookup)
	r.GET("/letters/:id", letters.GetByID)
	r.PUT("/letters/:id", letters.Update)
	r.GET("/counters", counters.List)
	r.PUT("/counters/:key", counters.Override)
	r.GET("/catalog/letter-types", catalog.LetterTypes)
	r.GET("/catalog/divisions", catalog.Divisions)
	r.GET("/public/verify", verify.Verify)
	r.GET("/public/verify/*number", verify.Verify)

	return &testServer{router: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, testutil.Envelope) {
	t.Helper()
	return testutil.Serve(t, s.router, method, path, body)
}

func (s *testServer) issue(t *testing.T, typeCode, division string) corrapp.LetterResponse {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/letters", testutil.IssueRequest(typeCode, division))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[corrapp.LetterResponse](t, env)
}

func TestLetterHandler_Issue(t *testing.T) {
	s := newTestServer(t)

	first := s.issue(t, "02", "RIN")
	second := s.issue(t, "01", "LIH")

	assert.Equal(t, "02.001/DIV-RIN/IV/2026", first.Number)
	assert.Equal(t, "01.002/DIV-LIH/IV/2026", second.Number)
	assert.Equal(t, "2026-04-15", first.Date)
	assert.Equal(t, correspondence.DefaultSigner, first.SignedBy)
	assert.False(t, first.IsNumberOnly)
}

func TestLetterHandler_Issue_Validation(t *testing.T) {
	s := newTestServer(t)

	testutil.RunHTTPTestCases(t, s.router, []testutil.HTTPTestCase{
		{
			Name:           "malformed codes",
			Method:         http.MethodPost,
			Path:           "/letters",
			Body:           map[string]any{"type_code": "2", "division_code": "RINX", "title": "x", "recipient": "y"},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   "VALIDATION_ERROR",
			Validate: func(t *testing.T, _ *httptest.ResponseRecorder, env testutil.Envelope) {
				assert.NotEmpty(t, env.Error.Details)
			},
		},
		{
			Name:           "missing title",
			Method:         http.MethodPost,
			Path:           "/letters",
			Body:           map[string]any{"type_code": "02", "division_code": "RIN", "recipient": "y"},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   "VALIDATION_ERROR",
		},
		{
			Name:           "unknown type code",
			Method:         http.MethodPost,
			Path:           "/letters",
			Body:           testutil.IssueRequest("99", "RIN"),
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   "INVALID_INPUT",
			Validate: func(t *testing.T, _ *httptest.ResponseRecorder, env testutil.Envelope) {
				assert.NotEmpty(t, env.Error.RequestID)
			},
		},
		{
			Name:           "unknown sort field",
			Path:           "/letters?sort_by=content",
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   "VALIDATION_ERROR",
		},
	})

	t.Run("rejected input does not consume a serial", func(t *testing.T) {
		letter := s.issue(t, "02", "RIN")
		assert.Equal(t, "02.001/DIV-RIN/IV/2026", letter.Number)
	})
}

func TestLetterHandler_Reserve(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/letters/reserve", map[string]any{
		"type_code":     "08",
		"division_code": "mkr",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	letter := testutil.DecodeData[corrapp.LetterResponse](t, env)
	assert.Equal(t, "08.001/DIV-MKR/IV/2026", letter.Number)
	assert.True(t, letter.IsNumberOnly)
	assert.Equal(t, correspondence.ReservationRecipient, letter.Recipient)
}

func TestLetterHandler_ListAndStats(t *testing.T) {
	s := newTestServer(t)
	s.issue(t, "02", "RIN")
	s.issue(t, "02", "LIH")
	s.issue(t, "01", "RIN")

	w, env := s.do(t, http.MethodGet, "/letters?type_code=02&page=1&page_size=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(2), env.Meta.Total)
	assert.Equal(t, 1, env.Meta.PageSize)

	var letters []corrapp.LetterResponse
	require.NoError(t, json.Unmarshal(env.Data, &letters))
	require.Len(t, letters, 1)
	assert.Equal(t, "02.002/DIV-LIH/IV/2026", letters[0].Number)

	w, env = s.do(t, http.MethodGet, "/letters?page_size=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = s.do(t, http.MethodGet, "/letters/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats corrapp.DashboardStatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.ThisMonth)

	w, env = s.do(t, http.MethodGet, "/letters/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &letters))
	assert.Len(t, letters, 3)
	assert.Equal(t, "02.001/DIV-RIN/IV/2026", letters[0].Number)
}

func TestLetterHandler_LookupGetUpdate(t *testing.T) {
	s := newTestServer(t)
	issued := s.issue(t, "02", "RIN")

	w, env := s.do(t, http.MethodGet, "/letters/lookup?number=02.001/div-rin/iv/2026", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found corrapp.LetterResponse
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Equal(t, issued.ID, found.ID)

	w, _ = s.do(t, http.MethodGet, "/letters/lookup", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/letters/"+issued.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodPut, "/letters/"+issued.ID, map[string]any{"title": "Undangan Revisi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated corrapp.LetterResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Undangan Revisi", updated.Title)
	assert.Equal(t, issued.Number, updated.Number)

	w, env = s.do(t, http.MethodGet, "/letters/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	w, env = s.do(t, http.MethodGet, "/letters/00000000-0000-0000-0000-000000000042", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCounterHandler(t *testing.T) {
	s := newTestServer(t)
	s.issue(t, "02", "RIN")

	w, env := s.do(t, http.MethodGet, "/counters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot corrapp.CounterSnapshotResponse
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	assert.Equal(t, int64(1), snapshot.GlobalSequence)
	assert.Equal(t, int64(2), snapshot.NextSerial)

	w, env = s.do(t, http.MethodPut, "/counters/"+correspondence.GlobalSequenceKey, map[string]any{"value": 99})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	letter := s.issue(t, "02", "RIN")
	assert.Equal(t, "02.100/DIV-RIN/IV/2026", letter.Number)

	w, env = s.do(t, http.MethodPut, "/counters/"+correspondence.GlobalSequenceKey, map[string]any{"value": 5})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "COUNTER_REGRESSION", env.Error.Code)

	w, env = s.do(t, http.MethodPut, "/counters/"+correspondence.GlobalSequenceKey, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = s.do(t, http.MethodPut, "/counters/ZZ", map[string]any{"value": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestCatalogHandler(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/catalog/letter-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var types []corrapp.LetterTypeResponse
	require.NoError(t, json.Unmarshal(env.Data, &types))
	assert.Len(t, types, len(correspondence.DefaultLetterTypes()))

	w, env = s.do(t, http.MethodGet, "/catalog/divisions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var divisions []corrapp.DivisionResponse
	require.NoError(t, json.Unmarshal(env.Data, &divisions))
	assert.Len(t, divisions, len(correspondence.DefaultDivisions()))
}

func TestVerifyHandler(t *testing.T) {
	s := newTestServer(t)
	issued := s.issue(t, "02", "RIN")

	tests := []struct {
		name  string
		path  string
		found bool
	}{
		{"query form", "/public/verify?number=02.001%2FDIV-RIN%2FIV%2F2026", true},
		{"path form", "/public/verify/02.001/DIV-RIN/IV/2026", true},
		{"case and whitespace", "/public/verify?number=%2002.001%2Fdiv-rin%2Fiv%2F2026%20", true},
		{"unknown", "/public/verify?number=02.999%2FDIV-RIN%2FIV%2F2026", false},
		{"empty", "/public/verify", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var raw map[string]any
			require.NoError(t, json.Unmarshal(env.Data, &raw))
			assert.Equal(t, tt.found, raw["found"])
			assert.NotContains(t, raw, "id")
			if tt.found {
				assert.Equal(t, issued.Number, raw["number"])
				assert.Equal(t, "Surat Undangan", raw["type_name"])
			}
		})
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name     string
		db       DatabasePinger
		status   int
		database string
	}{
		{"connected", stubPinger{}, http.StatusOK, "connected"},
		{"unreachable", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "disconnected"},
		{"memory driver", nil, http.StatusOK, "in-memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler(tt.db, "postgres", "test")
			r := gin.New()
			r.GET("/health", h.Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.status, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.database, resp.Database)
		})
	}
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler(nil, "memory", "1.2.3")
	r := gin.New()
	r.GET("/system/info", h.GetSystemInfo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/system/info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", shared.ErrNumberConflict, http.StatusConflict, "NUMBER_CONFLICT"},
		{"storage", shared.NewStorageError("allocate", errors.New("timeout")), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.Use(middleware.RequestID())
			r.GET("/x", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
			assert.NotContains(t, w.Body.String(), "timeout")
		})
	}
}

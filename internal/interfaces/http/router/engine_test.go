package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/config"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence/memory"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/handler"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()
	store := memory.NewStore()
	numbering := corrapp.NewNumberingService(store.TransactionScope(), store.CounterRepo(), store.CatalogRepo(),
		corrapp.DefaultNumberingConfig(), nil)
	archive := corrapp.NewArchiveService(store.TransactionScope(), store.LetterRepo(), store.CatalogRepo(), nil, time.UTC, nil)
	verification := corrapp.NewVerificationService(store.LetterRepo(), store.CatalogRepo(), nil, nil, nil)

	engine, err := NewEngine(EngineConfig{
		HTTP: config.HTTPConfig{
			MaxBodySize:      1 << 20,
			CORSAllowOrigins: []string{"https://persuratan.ays.or.id"},
		},
		ServiceName:   "ays-persuratan",
		VerifyLimiter: limiter,
	}, Handlers{
		Letters:  handler.NewLetterHandler(numbering, archive),
		Counters: handler.NewCounterHandler(numbering),
		Catalog:  handler.NewCatalogHandler(corrapp.NewCatalogService(store.CatalogRepo())),
		Verify:   handler.NewVerifyHandler(verification),
		System:   handler.NewSystemHandler(nil, config.DriverMemory, "test"),
	})
	require.NoError(t, err)
	return engine
}

func TestNewEngine_Routes(t *testing.T) {
	engine := newTestEngine(t, nil)

	body := `{"type_code":"02","division_code":"RIN","title":"Undangan","recipient":"Mitra"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/letters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	var created struct {
		Data corrapp.LetterResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	paths := []string{
		"/health",
		"/api/v1/letters",
		"/api/v1/letters/stats",
		"/api/v1/letters/export",
		"/api/v1/letters/lookup?number=" + created.Data.Number,
		"/api/v1/letters/" + created.Data.ID,
		"/api/v1/counters",
		"/api/v1/catalog/letter-types",
		"/api/v1/catalog/divisions",
		"/api/v1/public/verify?number=" + created.Data.Number,
		"/api/v1/public/verify/" + created.Data.Number,
		"/api/v1/system/info",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNewEngine_VerifyRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	t.Cleanup(limiter.Stop)
	engine := newTestEngine(t, limiter)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/verify?number=x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Other routes are not throttled.
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/divisions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

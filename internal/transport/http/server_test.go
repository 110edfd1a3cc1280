package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheRepo "feeddeck/internal/modules/cache/repository"
	cacheService "feeddeck/internal/modules/cache/service"
	feedDomain "feeddeck/internal/modules/feed/domain"
	"feeddeck/internal/modules/feed/parser"
	feedService "feeddeck/internal/modules/feed/service"
	searchService "feeddeck/internal/modules/search/service"
	weatherService "feeddeck/internal/modules/weather/service"
	"feeddeck/internal/shared/config"
	sharederrors "feeddeck/internal/shared/errors"
)

func newTestServer(t *testing.T) (*Server, *cacheRepo.MemoryStorage) {
	t.Helper()

	kv := cacheRepo.NewMemoryStorage()
	store := cacheService.New(kv)

	engine := feedService.New(
		map[feedDomain.Source]string{},
		feedService.NewFetcher(nil, "http://127.0.0.1:0"),
		parser.New(),
		weatherService.New(nil, "http://127.0.0.1:0"),
		nil,
		store,
		nil,
	)

	cfg := &config.Config{HTTPPort: "0"}
	return New(cfg, engine, searchService.New(), nil, store), kv
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFeedsEndpointRejectsUnknownTab(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feeds?tab=bogus", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedsEndpointDefaultsToAll(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feeds", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp feedsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Counts)
	assert.Contains(t, resp.Counts, feedDomain.TabAll)
}

func TestCacheResetRequiresPassphrase(t *testing.T) {
	srv, kv := newTestServer(t)

	require.NoError(t, kv.Set(cacheService.FeedsKey, "{}"))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cache/reset",
		strings.NewReader(`{"passphrase":"wrong"}`)))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := kv.Get(cacheService.FeedsKey)
	assert.NoError(t, err, "cache untouched on bad passphrase")
}

func TestCacheResetClearsAllKeys(t *testing.T) {
	srv, kv := newTestServer(t)

	require.NoError(t, kv.Set(cacheService.FeedsKey, "{}"))
	require.NoError(t, kv.Set(cacheService.WeatherKey, "{}"))
	require.NoError(t, kv.Set(cacheService.TranslationKey, "{}"))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cache/reset",
		strings.NewReader(`{"passphrase":"`+resetPassphrase+`"}`)))

	assert.Equal(t, http.StatusNoContent, rec.Code)

	for _, key := range []string{cacheService.FeedsKey, cacheService.WeatherKey, cacheService.TranslationKey} {
		_, err := kv.Get(key)
		assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound, "key %s must be gone", key)
	}
}

func TestRSSEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rss", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, rec.Body.String(), "<rss")
}

func TestWeatherEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshEndpointAccepted(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)

	// Give the background refresh a moment; with no configured sources
	// it settles without error.
	time.Sleep(50 * time.Millisecond)
}

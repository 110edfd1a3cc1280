package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sloghttp "github.com/samber/slog-http"

	cacheService "feeddeck/internal/modules/cache/service"
	feedDomain "feeddeck/internal/modules/feed/domain"
	feedService "feeddeck/internal/modules/feed/service"
	searchService "feeddeck/internal/modules/search/service"
	translationService "feeddeck/internal/modules/translation/service"
	"feeddeck/internal/shared/config"
)

// resetPassphrase gates the operator cache reset. A literal compared for
// exact equality: the threat model is accidental clicks, not access
// control.
const resetPassphrase = "feeddeck-reset"

// Server exposes the aggregation engine over HTTP.
type Server struct {
	cfg    *config.Config
	engine *feedService.Service
	search *searchService.Service
	queue  *translationService.Queue
	store  *cacheService.Store
	logger *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, engine *feedService.Service, search *searchService.Service, queue *translationService.Queue, store *cacheService.Store) *Server {
	return &Server{
		cfg:    cfg,
		engine: engine,
		search: search,
		queue:  queue,
		store:  store,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler builds the route table with logging and recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/feeds", s.handleFeeds)
	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/cache/reset", s.handleCacheReset)
	mux.HandleFunc("GET /rss", s.handleRSS)
	mux.HandleFunc("GET /health", s.handleHealth)

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)
	return handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Feed server starting", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// feedView is one displayable item; Hacker News titles carry their
// translation when the queue has one.
type feedView struct {
	feedDomain.FeedItem
	TranslatedTitle string `json:"translated_title,omitempty"`
}

type feedsResponse struct {
	Items   []feedView             `json:"items"`
	Counts  map[feedDomain.Tab]int `json:"counts"`
	Loading bool                   `json:"loading"`
	Error   string                 `json:"error,omitempty"`
}

func (s *Server) handleFeeds(w http.ResponseWriter, r *http.Request) {
	tab := feedDomain.TabAll
	if raw := r.URL.Query().Get("tab"); raw != "" {
		parsed, err := feedDomain.ParseTab(raw)
		if err != nil {
			http.Error(w, "Unknown tab", http.StatusBadRequest)
			return
		}
		tab = parsed
	}
	query := r.URL.Query().Get("q")

	merged := s.engine.Items()
	bySource := s.engine.ItemsBySource()

	visible := s.search.Visible(merged, bySource, tab, query)
	views := make([]feedView, 0, len(visible))
	for _, item := range visible {
		view := feedView{FeedItem: item}
		if s.queue != nil && item.Source == feedDomain.SourceHackernews {
			if translated, ok := s.queue.Lookup(item.Title); ok {
				view.TranslatedTitle = translated
			}
		}
		views = append(views, view)
	}

	writeJSON(w, feedsResponse{
		Items:   views,
		Counts:  s.search.Counts(merged, bySource, tab, query),
		Loading: s.engine.Loading(),
		Error:   s.engine.Err(),
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Weather())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// Single-flight and the cache-hit short circuit make this safe to
	// expose without additional guarding. The refresh outlives the
	// request, so it must not inherit the request context.
	go s.engine.Refresh(context.Background())
	w.WriteHeader(http.StatusAccepted)
}

type resetRequest struct {
	Passphrase string `json:"passphrase"`
}

func (s *Server) handleCacheReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Passphrase != resetPassphrase {
		http.Error(w, "Invalid passphrase", http.StatusForbidden)
		return
	}

	s.store.Reset(cacheService.FeedsKey, cacheService.WeatherKey, cacheService.TranslationKey)
	s.logger.Info("Caches reset by operator")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	rss, err := s.engine.ExportRSS(baseURL).ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

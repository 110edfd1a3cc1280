package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	cacheService "feeddeck/internal/modules/cache/service"
	"feeddeck/internal/modules/feed/domain"
	"feeddeck/internal/modules/feed/parser"
	translationService "feeddeck/internal/modules/translation/service"
	weatherDomain "feeddeck/internal/modules/weather/domain"
	weatherService "feeddeck/internal/modules/weather/service"
)

// totalFailureMessage is the only user-facing error this engine emits.
// It appears solely when every feed source transport-fails; the weather
// fetch does not participate in the check.
const totalFailureMessage = "フィードの取得に失敗しました。しばらくしてからリロードしてください。"

// Service is the feed orchestrator: it coordinates the parallel fetch of
// every source, merges results with the cache, and owns the
// loading/error state machine. All state is in-memory and rebuilt per
// process, either from cache or from the network.
type Service struct {
	feeds   map[domain.Source]string
	fetcher *Fetcher
	parser  *parser.Parser
	weather *weatherService.Service
	cities  []weatherDomain.City
	store   *cacheService.Store
	queue   *translationService.Queue

	mu        sync.RWMutex
	bySource  map[domain.Source][]domain.FeedItem
	merged    []domain.FeedItem
	forecasts []weatherDomain.CityForecast
	loading   bool
	errMsg    string

	refreshing sync.Mutex
	inFlight   bool
}

// New creates a new feed orchestrator
func New(
	feeds map[domain.Source]string,
	fetcher *Fetcher,
	feedParser *parser.Parser,
	weather *weatherService.Service,
	cities []weatherDomain.City,
	store *cacheService.Store,
	queue *translationService.Queue,
) *Service {
	return &Service{
		feeds:    feeds,
		fetcher:  fetcher,
		parser:   feedParser,
		weather:  weather,
		cities:   cities,
		store:    store,
		queue:    queue,
		bySource: make(map[domain.Source][]domain.FeedItem),
		loading:  true,
	}
}

// Refresh populates the engine state, from cache when a valid entry
// exists and from the network otherwise. Refresh is single-flight: a
// call while one is outstanding returns immediately.
func (s *Service) Refresh(ctx context.Context) {
	s.refreshing.Lock()
	if s.inFlight {
		s.refreshing.Unlock()
		return
	}
	s.inFlight = true
	s.refreshing.Unlock()

	defer func() {
		s.refreshing.Lock()
		s.inFlight = false
		s.refreshing.Unlock()
	}()

	if cached, ok := cacheService.Load[map[domain.Source][]domain.FeedItem](s.store, cacheService.FeedsKey); ok {
		forecasts, _ := cacheService.Load[[]weatherDomain.CityForecast](s.store, cacheService.WeatherKey)
		s.setState(cached, forecasts, "")
		s.observeTranslations(ctx, cached)
		slog.Debug("Feeds served from cache")
		return
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	// The weather batch runs alongside the feed fetches; its outcome
	// never feeds the error check below.
	var forecasts []weatherDomain.CityForecast
	var weatherWG sync.WaitGroup
	weatherWG.Add(1)
	go func() {
		defer weatherWG.Done()
		forecasts = s.weather.FetchForecasts(ctx, s.cities)
	}()

	bySource, failures := s.fetchAll(ctx)
	weatherWG.Wait()

	errMsg := ""
	if failures == len(s.feeds) && len(s.feeds) > 0 {
		errMsg = totalFailureMessage
	}

	// Persist even on partial failure: failed sources cache as empty
	// for the remainder of the day, until expiry or a manual reset.
	expiresAt := s.store.EndOfDay()
	cacheService.Save(s.store, cacheService.FeedsKey, bySource, expiresAt)
	cacheService.Save(s.store, cacheService.WeatherKey, forecasts, expiresAt)

	s.setState(bySource, forecasts, errMsg)
	s.observeTranslations(ctx, bySource)
}

// fetchAll launches every configured source fetch concurrently and
// collects each outcome separately. A source that fails contributes an
// empty slice, never an aborting error.
func (s *Service) fetchAll(ctx context.Context) (map[domain.Source][]domain.FeedItem, int) {
	type outcome struct {
		source domain.Source
		items  []domain.FeedItem
		failed bool
	}

	results := make(chan outcome, len(s.feeds))

	var wg sync.WaitGroup
	for source, feedURL := range s.feeds {
		wg.Add(1)
		go func(source domain.Source, feedURL string) {
			defer wg.Done()

			body, err := s.fetcher.Fetch(ctx, feedURL)
			if err != nil {
				slog.Warn("Feed fetch failed", "source", source, "error", err)
				results <- outcome{source: source, items: []domain.FeedItem{}, failed: true}
				return
			}

			results <- outcome{source: source, items: s.parser.Parse(body, source)}
		}(source, feedURL)
	}
	wg.Wait()
	close(results)

	bySource := make(map[domain.Source][]domain.FeedItem, len(s.feeds))
	failures := 0
	for res := range results {
		bySource[res.source] = res.items
		if res.failed {
			failures++
		}
	}
	return bySource, failures
}

func (s *Service) setState(bySource map[domain.Source][]domain.FeedItem, forecasts []weatherDomain.CityForecast, errMsg string) {
	merged := mergeSorted(bySource)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySource = bySource
	s.merged = merged
	s.forecasts = forecasts
	s.errMsg = errMsg
	s.loading = false
}

func (s *Service) observeTranslations(ctx context.Context, bySource map[domain.Source][]domain.FeedItem) {
	if s.queue == nil {
		return
	}

	items := bySource[domain.SourceHackernews]
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	s.queue.Observe(ctx, titles)
}

// mergeSorted concatenates all sources in merge order and sorts by
// parsed publication date, newest first. When either date is missing or
// unparseable the comparator abstains, so those items keep their
// concatenation position. Intentional weak ordering.
func mergeSorted(bySource map[domain.Source][]domain.FeedItem) []domain.FeedItem {
	var merged []domain.FeedItem
	for _, source := range domain.Sources {
		merged = append(merged, bySource[source]...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ti, oki := ParseWhen(merged[i].PublishedAt)
		tj, okj := ParseWhen(merged[j].PublishedAt)
		if !oki || !okj {
			return false
		}
		return ti.After(tj)
	})
	return merged
}

// whenLayouts covers the timestamp formats seen across RSS 2.0, RDF and
// Atom feeds.
var whenLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

// ParseWhen attempts to parse a feed timestamp string.
func ParseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Items returns the merged, sorted "all sources" view.
func (s *Service) Items() []domain.FeedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merged
}

// ItemsBySource returns the per-source item slices.
func (s *Service) ItemsBySource() map[domain.Source][]domain.FeedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bySource
}

// Weather returns the current city forecasts.
func (s *Service) Weather() []weatherDomain.CityForecast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forecasts
}

// Loading reports whether a refresh is populating state.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the user-facing error message, empty when healthy.
func (s *Service) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

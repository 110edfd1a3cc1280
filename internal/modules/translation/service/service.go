package service

import (
	"context"
	"log/slog"
	"sync"

	cacheService "feeddeck/internal/modules/cache/service"
	"feeddeck/internal/modules/translation/domain"
)

// Queue opportunistically translates foreign-language titles in the
// background. Work is strictly sequential: one title at a time, a single
// drain loop, and at most one drain active. Everything here is best
// effort; a failed title is skipped and may come back on a later
// Observe.
type Queue struct {
	capability domain.Capability
	store      *cacheService.Store
	src, dst   string

	mu           sync.Mutex
	availability domain.Availability
	translations map[string]string
	pending      []string
	pendingSet   map[string]struct{}
	draining     bool
}

// New creates a translation queue over the given capability, seeding the
// translated set from the persisted cache.
func New(capability domain.Capability, store *cacheService.Store, src, dst string) *Queue {
	translations, ok := cacheService.Load[map[string]string](store, cacheService.TranslationKey)
	if !ok || translations == nil {
		translations = make(map[string]string)
	}

	return &Queue{
		capability:   capability,
		store:        store,
		src:          src,
		dst:          dst,
		availability: domain.AvailabilityUnchecked,
		translations: translations,
		pendingSet:   make(map[string]struct{}),
	}
}

// Lookup returns the cached translation for a title, if any.
func (q *Queue) Lookup(title string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	translated, ok := q.translations[title]
	return translated, ok
}

// Translations returns a snapshot of the translated titles.
func (q *Queue) Translations() map[string]string {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := make(map[string]string, len(q.translations))
	for k, v := range q.translations {
		snapshot[k] = v
	}
	return snapshot
}

// Observe enqueues titles that are neither translated nor already
// pending and starts a drain if none is active. While the capability is
// unavailable the queue does no work for the session.
func (q *Queue) Observe(ctx context.Context, titles []string) {
	if !q.available(ctx) {
		return
	}

	q.mu.Lock()
	for _, title := range titles {
		if title == "" {
			continue
		}
		if _, done := q.translations[title]; done {
			continue
		}
		if _, queued := q.pendingSet[title]; queued {
			continue
		}
		q.pending = append(q.pending, title)
		q.pendingSet[title] = struct{}{}
	}

	start := !q.draining && len(q.pending) > 0
	if start {
		q.draining = true
	}
	q.mu.Unlock()

	if start {
		go q.drain(ctx)
	}
}

// available resolves the Unchecked -> {Unavailable | Available} state
// machine, probing the capability at most once per session.
func (q *Queue) available(ctx context.Context) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.availability == domain.AvailabilityUnchecked {
		if q.capability != nil && q.capability.CanTranslate(ctx, q.src, q.dst) {
			q.availability = domain.AvailabilityAvailable
		} else {
			q.availability = domain.AvailabilityUnavailable
			slog.Info("Translation capability unavailable, skipping for this session")
		}
	}

	return q.availability == domain.AvailabilityAvailable
}

// drain processes the pending list one title at a time. Titles observed
// while draining land on the same list and are picked up by this pass.
// When the list empties the accumulated cache is persisted and the loop
// exits.
func (q *Queue) drain(ctx context.Context) {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			snapshot := make(map[string]string, len(q.translations))
			for k, v := range q.translations {
				snapshot[k] = v
			}
			// Persist and clear the flag under the same lock: an
			// Observe racing this exit runs after draining is false and
			// starts its own pass.
			cacheService.Save(q.store, cacheService.TranslationKey, snapshot, q.store.EndOfDay())
			q.draining = false
			q.mu.Unlock()
			return
		}

		title := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		// The title stays in pendingSet while in flight so a concurrent
		// Observe cannot re-enqueue it mid-translation.
		translated, err := q.capability.Translate(ctx, title)

		q.mu.Lock()
		delete(q.pendingSet, title)
		if err == nil {
			q.translations[title] = translated
		} else {
			slog.Debug("Translation failed, skipping title", "error", err)
		}
		q.mu.Unlock()
	}
}

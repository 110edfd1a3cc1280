package service

import (
	"encoding/json"
	"log/slog"
	"time"

	"feeddeck/internal/modules/cache/repository"
)

// Cache keys shared by the engine. Every key holds an Entry envelope.
const (
	FeedsKey       = "feeds-cache"
	WeatherKey     = "weather-cache"
	TranslationKey = "translation-cache"
)

// jst is the fixed zone governing day-boundary expiry.
var jst = time.FixedZone("JST", 9*60*60)

// Entry is the persisted envelope around any cached payload. An entry is
// valid iff now < ExpiresAt (unix milliseconds).
type Entry[T any] struct {
	Payload   T     `json:"payload"`
	ExpiresAt int64 `json:"expires_at"`
}

// Store wraps a KVStore with expiry-aware, best-effort semantics: reads
// of expired or corrupt entries delete the record and miss, writes that
// fail are swallowed. Caching is an optimization, never a correctness
// requirement.
type Store struct {
	kv  repository.KVStore
	now func() time.Time
}

// New creates a Store over the given substrate.
func New(kv repository.KVStore) *Store {
	return &Store{kv: kv, now: time.Now}
}

// NewWithClock creates a Store with an injected clock.
func NewWithClock(kv repository.KVStore, now func() time.Time) *Store {
	return &Store{kv: kv, now: now}
}

// Load reads and unwraps the entry at key. A missing, malformed or
// expired record behaves as a miss; the two latter cases also delete the
// underlying record. Load never returns an error.
func Load[T any](s *Store, key string) (T, bool) {
	var zero T

	raw, err := s.kv.Get(key)
	if err != nil {
		return zero, false
	}

	var entry Entry[T]
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		slog.Debug("Dropping corrupt cache entry", "key", key, "error", err)
		_ = s.kv.Remove(key)
		return zero, false
	}

	if s.now().UnixMilli() >= entry.ExpiresAt {
		_ = s.kv.Remove(key)
		return zero, false
	}

	return entry.Payload, true
}

// Save writes payload under key with an absolute expiry. Failures
// (serialization, capacity) are logged and swallowed.
func Save[T any](s *Store, key string, payload T, expiresAt time.Time) {
	entry := Entry[T]{Payload: payload, ExpiresAt: expiresAt.UnixMilli()}

	data, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("Failed to serialize cache entry", "key", key, "error", err)
		return
	}

	if err := s.kv.Set(key, string(data)); err != nil {
		slog.Warn("Failed to persist cache entry", "key", key, "error", err)
	}
}

// Reset removes the named keys. Used by the operator-facing cache reset.
func (s *Store) Reset(keys ...string) {
	for _, key := range keys {
		if err := s.kv.Remove(key); err != nil {
			slog.Warn("Failed to remove cache entry", "key", key, "error", err)
		}
	}
}

// EndOfDay returns 23:59:59.999 of the current calendar day in JST,
// regardless of the store clock's zone. All feed and weather entries
// expire at this boundary rather than on a rolling TTL.
func (s *Store) EndOfDay() time.Time {
	return EndOfDay(s.now())
}

// EndOfDay computes the JST day boundary for an arbitrary instant.
func EndOfDay(now time.Time) time.Time {
	y, m, d := now.In(jst).Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, jst)
}

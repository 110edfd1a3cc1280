package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeddeck/internal/modules/cache/repository"
	sharederrors "feeddeck/internal/shared/errors"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// fullStore rejects every write, simulating an exhausted substrate.
type fullStore struct {
	repository.KVStore
}

func (fullStore) Set(key, value string) error {
	return errors.New("quota exceeded")
}

func TestLoadAfterSave(t *testing.T) {
	kv := repository.NewMemoryStorage()
	store := New(kv)

	Save(store, "k", payload{Name: "feeds", Count: 3}, time.Now().Add(time.Hour))

	got, ok := Load[payload](store, "k")
	require.True(t, ok)
	assert.Equal(t, payload{Name: "feeds", Count: 3}, got)
}

func TestLoadExpiredDeletesRecord(t *testing.T) {
	kv := repository.NewMemoryStorage()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewWithClock(kv, func() time.Time { return now })

	Save(store, "k", payload{Name: "stale"}, now.Add(time.Hour))

	// Advance past expiry
	now = now.Add(2 * time.Hour)

	_, ok := Load[payload](store, "k")
	assert.False(t, ok)

	_, err := kv.Get("k")
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound, "expired record must be gone")
}

func TestLoadCorruptDeletesRecord(t *testing.T) {
	kv := repository.NewMemoryStorage()
	store := New(kv)

	require.NoError(t, kv.Set("k", "{not json"))

	_, ok := Load[payload](store, "k")
	assert.False(t, ok)

	_, err := kv.Get("k")
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound, "corrupt record must be gone")
}

func TestLoadMissing(t *testing.T) {
	store := New(repository.NewMemoryStorage())

	_, ok := Load[payload](store, "absent")
	assert.False(t, ok)
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	store := New(fullStore{})

	assert.NotPanics(t, func() {
		Save(store, "k", payload{Name: "ignored"}, time.Now().Add(time.Hour))
	})
}

func TestReset(t *testing.T) {
	kv := repository.NewMemoryStorage()
	store := New(kv)

	Save(store, FeedsKey, payload{}, time.Now().Add(time.Hour))
	Save(store, WeatherKey, payload{}, time.Now().Add(time.Hour))

	store.Reset(FeedsKey, WeatherKey)

	_, err := kv.Get(FeedsKey)
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound)
	_, err = kv.Get(WeatherKey)
	assert.ErrorIs(t, err, sharederrors.ErrKeyNotFound)
}

func TestEndOfDayBoundary(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "morning in JST",
			now:  time.Date(2024, 5, 1, 9, 0, 0, 0, jst),
			want: time.Date(2024, 5, 1, 23, 59, 59, 999_000_000, jst),
		},
		{
			name: "one millisecond before midnight",
			now:  time.Date(2024, 5, 1, 23, 59, 59, 999_000_000, jst),
			want: time.Date(2024, 5, 1, 23, 59, 59, 999_000_000, jst),
		},
		{
			name: "UTC instant resolves to the JST calendar day",
			// 16:30 UTC is already 01:30 next day in JST
			now:  time.Date(2024, 5, 1, 16, 30, 0, 0, time.UTC),
			want: time.Date(2024, 5, 2, 23, 59, 59, 999_000_000, jst),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndOfDay(tt.now)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestEndOfDayIndependentOfTimeOfDay(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, jst)
	want := EndOfDay(day)

	for hour := 0; hour < 24; hour++ {
		got := EndOfDay(day.Add(time.Duration(hour) * time.Hour))
		assert.True(t, got.Equal(want), "hour %d: got %v", hour, got)
	}
}

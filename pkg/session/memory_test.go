package session

import (
	"context"
	"testing"
	"time"

	"BatiDetect/internal/entity"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute)
	ctx := context.Background()

	_, err := store.Get(ctx, "01J0000000000000000000000A")
	require.ErrorIs(t, err, ErrSessionNotFound)

	state := entity.NewSessionState("01J0000000000000000000000A")
	state.Page = entity.PageModelSelection
	state.Mode = entity.InputModeMap
	state.LastClick = &entity.Coordinate{Latitude: 40, Longitude: -3}
	require.NoError(t, store.Save(ctx, state))

	got, err := store.Get(ctx, state.ID)
	require.NoError(t, err)
	require.Equal(t, state, *got)

	// Mutating the returned copy leaves the stored state alone.
	got.LastClick.Latitude = 0
	again, err := store.Get(ctx, state.ID)
	require.NoError(t, err)
	require.Equal(t, 40.0, again.LastClick.Latitude)

	require.NoError(t, store.Delete(ctx, state.ID))
	_, err = store.Get(ctx, state.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute).(*memoryStore)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), entity.NewSessionState("s")))

	now = now.Add(59 * time.Second)
	_, err := store.Get(context.Background(), "s")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = store.Get(context.Background(), "s")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLoadOrNewDefaults(t *testing.T) {
	t.Parallel()

	state, err := LoadOrNew(context.Background(), NewMemory(0), "fresh")
	require.NoError(t, err)
	require.Equal(t, "fresh", state.ID)
	require.Equal(t, entity.PageContext, state.Page)
	require.Equal(t, entity.InputModeManual, state.Mode)
	require.Equal(t, entity.DefaultLatitude, state.Latitude)
	require.Nil(t, state.LastClick)
}

func TestMemoryStoreExpiryKeepsConcurrentSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory(time.Minute).(*memoryStore)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.Save(ctx, entity.NewSessionState("s")))
	clock = clock.Add(2 * time.Minute)

	fresh := entity.NewSessionState("s")
	fresh.Page = entity.PageDetectionDemo

	// The first clock read in Get sees the stale entry; a Save lands right
	// after it, before Get takes the write lock.
	saved := false
	store.now = func() time.Time {
		if !saved {
			saved = true
			require.NoError(t, store.Save(ctx, fresh))
		}
		return clock
	}

	_, err := store.Get(ctx, "s")
	require.ErrorIs(t, err, ErrSessionNotFound)

	got, err := store.Get(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, entity.PageDetectionDemo, got.Page)
}

package session

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

var alice = Principal{ID: "u-1", Username: "alice"}

func loggedIn(clock *fakeClock) *Cache {
	cache := New(WithClock(clock.Now))
	cache.Login("tok-1", clock.Now().Add(30*time.Minute), alice)

	return cache
}

func TestCache_StartsLoggedOut(t *testing.T) {
	cache := New()

	assert.Equal(t, StateLoggedOut, cache.State())
	_, err := cache.Begin()
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
	_, ok := cache.Token()
	assert.False(t, ok)
}

func TestCache_LoginThenInteract(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	assert.Equal(t, StateActive, cache.State())

	token, err := cache.Begin()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	profile, ok := cache.Profile()
	require.True(t, ok)
	assert.Equal(t, "alice", profile.Username)
}

func TestCache_TimesOutAfter31IdleMinutes(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	clock.Advance(31 * time.Minute)

	token, err := cache.Begin()
	assert.True(t, errors.Is(err, ErrSessionTimeout))
	assert.Empty(t, token, "stale token must not be handed out")
	assert.Equal(t, StateLoggedOut, cache.State())

	_, ok := cache.Profile()
	assert.False(t, ok)
}

func TestCache_InteractionKeepsSessionAlive(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	for range 3 {
		clock.Advance(29 * time.Minute)
		require.NoError(t, cache.Touch())
	}

	assert.Equal(t, StateActive, cache.State())
}

func TestCache_LimitIsExclusive(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	clock.Advance(InactivityLimit - time.Second)
	assert.NoError(t, cache.Touch())

	clock.Advance(InactivityLimit)
	assert.True(t, errors.Is(cache.Touch(), ErrSessionTimeout))
}

func TestCache_StateReportsExpiredOnce(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	clock.Advance(45 * time.Minute)

	assert.Equal(t, StateExpired, cache.State())
	assert.Equal(t, StateLoggedOut, cache.State())
}

func TestCache_RejectClearsWithoutRetry(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	token, err := cache.Begin()
	require.NoError(t, err)

	assert.True(t, cache.Reject(token))
	assert.Equal(t, StateLoggedOut, cache.State())

	_, err = cache.Begin()
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
}

func TestCache_RejectOfOldTokenKeepsNewLogin(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)
	cache.Login("tok-2", clock.Now().Add(30*time.Minute), alice)

	assert.False(t, cache.Reject("tok-1"))

	token, ok := cache.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-2", token)
}

func TestCache_Logout(t *testing.T) {
	cache := loggedIn(newFakeClock())

	cache.Logout()

	assert.Equal(t, StateLoggedOut, cache.State())
	assert.Zero(t, cache.Remaining())
}

func TestCache_Remaining(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	clock.Advance(10 * time.Minute)

	assert.Equal(t, 20*time.Minute, cache.Remaining())
}

func TestCache_SnapshotRestoreKeepsIdleClock(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	snapshot, ok := cache.Snapshot()
	require.True(t, ok)

	restored := New(WithClock(clock.Now))
	restored.Restore(snapshot)
	clock.Advance(31 * time.Minute)

	_, err := restored.Begin()
	assert.True(t, errors.Is(err, ErrSessionTimeout))
}

func TestCache_ConcurrentReadersNeverSeeHalfClearedSession(t *testing.T) {
	clock := newFakeClock()
	cache := loggedIn(clock)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%10 == 0 {
				cache.Reject("tok-1")

				return
			}
			if snapshot, ok := cache.Snapshot(); ok {
				assert.Equal(t, "tok-1", snapshot.Token)
				assert.Equal(t, "alice", snapshot.Principal.Username)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, StateLoggedOut, cache.State())
}

//go:build !integration
// +build !integration

package cache_query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type CacheQuerySuite struct {
	suite.Suite
}

func (s *CacheQuerySuite) TestGetDeduplicatesConcurrentFetches(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const readers = 16
	results := make([]any, readers)
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		i := i
		go func() {
			defer wg.Done()
			v, err := cache.Get(ctx, "k", time.Minute, fetch)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	// Let every reader attach to the pending call before it resolves.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "value", v)
	}
}

func (s *CacheQuerySuite) TestGetServesFreshWithoutFetching(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	cache.Set("k", 42, time.Minute)

	v, err := cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		t.Errorf("fetch must not run for a fresh entry")
		return nil, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func (s *CacheQuerySuite) TestGetServesStaleAndRefreshesInBackground(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	cache.Set("k", "old", 0) // immediately stale

	refreshed := make(chan struct{})
	v, err := cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		defer close(refreshed)
		return "new", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "old", v, "the caller gets the stale value without blocking")

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Errorf("background refresh never ran")
	}

	assert.Eventually(t, func() bool {
		v, ok := cache.Peek("k")
		return ok && v == "new"
	}, time.Second, 5*time.Millisecond)
}

func (s *CacheQuerySuite) TestBackgroundRefreshSurvivesCallerCancellation(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)

	cache.Set("k", "old", 0)

	ctx, cancel := context.WithCancel(context.Background())
	refreshCtxErr := make(chan error, 1)
	_, err := cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		// Simulate the original request going away mid-refresh.
		cancel()
		refreshCtxErr <- ctx.Err()
		return "new", nil
	})

	assert.NoError(t, err)
	select {
	case cerr := <-refreshCtxErr:
		assert.NoError(t, cerr, "refresh context must not inherit the caller's cancellation")
	case <-time.After(time.Second):
		t.Errorf("background refresh never ran")
	}
}

func (s *CacheQuerySuite) TestFailedRefreshKeepsStaleValue(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	cache.Set("k", "old", 0)

	attempted := make(chan struct{})
	v, err := cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		defer close(attempted)
		return nil, errors.New("upstream down")
	})

	assert.NoError(t, err)
	assert.Equal(t, "old", v)

	<-attempted
	// The entry stays; the next read still gets the last good value.
	v, err = cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		return nil, errors.New("upstream down")
	})
	assert.NoError(t, err)
	assert.Equal(t, "old", v)
}

func (s *CacheQuerySuite) TestGetPropagatesFetchErrorOnMiss(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	fetchErr := errors.New("upstream down")
	_, err := cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		return nil, fetchErr
	})

	assert.ErrorIs(t, err, fetchErr)

	_, ok := cache.Peek("k")
	assert.False(t, ok, "a failed fetch must not populate the cache")
}

func (s *CacheQuerySuite) TestPeekIgnoresStaleEntries(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)

	cache.Set("fresh", 1, time.Minute)
	cache.Set("stale", 2, 0)

	v, ok := cache.Peek("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = cache.Peek("stale")
	assert.False(t, ok)

	_, ok = cache.Peek("missing")
	assert.False(t, ok)
}

func (s *CacheQuerySuite) TestInvalidateForcesRefetch(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	cache.Set("k", "old", time.Minute)
	cache.Invalidate("k")

	var calls atomic.Int32
	v, err := cache.Get(ctx, "k", time.Minute, func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "new", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, int32(1), calls.Load())
}

func (s *CacheQuerySuite) TestInvalidatePrefixDropsOnlyMatchingKeys(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)

	cache.Set(SavedMoviesKey(7), "a", time.Minute)
	cache.Set(MovieDetailKey(7), "b", time.Minute)
	cache.Set(SavedMoviesKey(8), "c", time.Minute)

	cache.InvalidatePrefix(SavedMoviesKey(7))

	_, ok := cache.Peek(SavedMoviesKey(7))
	assert.False(t, ok)
	_, ok = cache.Peek(MovieDetailKey(7))
	assert.True(t, ok)
	_, ok = cache.Peek(SavedMoviesKey(8))
	assert.True(t, ok)
}

func (s *CacheQuerySuite) TestKeysListsPrefix(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)

	cache.Set(AuthUserKey("s1"), 1, time.Minute)
	cache.Set(AuthUserKey("s2"), 2, time.Minute)
	cache.Set(TrendingKey(), 3, time.Minute)

	keys := cache.Keys(BuildKey("auth", "user") + "/")
	assert.Len(t, keys, 2)
	assert.ElementsMatch(t, []Key{AuthUserKey("s1"), AuthUserKey("s2")}, keys)
}

func (s *CacheQuerySuite) TestEvictDropsEntriesPastRetention(t provider.T) {
	t.Parallel()

	cache := New(time.Minute)

	cache.Set("old", 1, time.Minute)
	cache.Set("young", 2, time.Minute)

	cache.mu.Lock()
	cache.entries["old"].fetchedAt = time.Now().Add(-2 * time.Minute)
	cache.mu.Unlock()

	cache.evict(time.Now())

	cache.mu.RLock()
	_, oldKept := cache.entries["old"]
	_, youngKept := cache.entries["young"]
	cache.mu.RUnlock()

	assert.False(t, oldKept)
	assert.True(t, youngKept)
}

func (s *CacheQuerySuite) TestLookupReturnsTypedValue(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	v, err := Lookup(ctx, cache, "k", time.Minute, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
}

func (s *CacheQuerySuite) TestLookupRejectsMismatchedType(t provider.T) {
	t.Parallel()

	cache := New(time.Hour)
	ctx := context.Background()

	cache.Set("k", "a string", time.Minute)

	_, err := Lookup(ctx, cache, "k", time.Minute, func(ctx context.Context) (int, error) {
		return 0, nil
	})

	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCacheQuerySuite(t *testing.T) {
	suite.RunSuite(t, new(CacheQuerySuite))
}

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/sakuya10969/capital-lens/internal/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newRecord(code string, bullets []string, at time.Time) model.IpoSummary {
	return model.IpoSummary{Code: code, Bullets: bullets, GeneratedAt: at}
}

func TestGetOrCreateRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	generations := 0
	generate := func(ctx context.Context) (model.IpoSummary, error) {
		generations++
		return newRecord("1234", []string{"A", "B"}, clock.Now()), nil
	}

	first, err := c.GetOrCreate(context.Background(), "1234", generate)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, first.Cached)

	clock.Advance(time.Hour)

	second, err := c.GetOrCreate(context.Background(), "1234", generate)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, second.Cached)
	assert.Equal(t, first.Bullets, second.Bullets)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
	assert.Equal(t, 1, generations)
}

func TestGetOrCreateExpiryRegenerates(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	generations := 0
	generate := func(ctx context.Context) (model.IpoSummary, error) {
		generations++
		return newRecord("1234", []string{"bullets"}, clock.Now()), nil
	}

	_, err := c.GetOrCreate(context.Background(), "1234", generate)
	assert.Equal(t, nil, err)

	clock.Advance(24*time.Hour + time.Minute)

	third, err := c.GetOrCreate(context.Background(), "1234", generate)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, third.Cached)
	assert.Equal(t, 2, generations)
	assert.Equal(t, clock.Now(), third.GeneratedAt)
}

func TestGetOrCreateDistinctKeys(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	for _, code := range []string{"1111", "2222"} {
		rec, err := c.GetOrCreate(context.Background(), code, func(ctx context.Context) (model.IpoSummary, error) {
			return newRecord(code, []string{code}, clock.Now()), nil
		})
		assert.Equal(t, nil, err)
		assert.Equal(t, code, rec.Code)
		assert.Equal(t, false, rec.Cached)
	}

	rec, err := c.GetOrCreate(context.Background(), "1111", func(ctx context.Context) (model.IpoSummary, error) {
		t.Fatal("should not regenerate")
		return model.IpoSummary{}, nil
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, true, rec.Cached)
}

func TestGetOrCreateGenerationErrorNotCached(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	_, err := c.GetOrCreate(context.Background(), "1234", func(ctx context.Context) (model.IpoSummary, error) {
		return model.IpoSummary{}, errors.New("backend down")
	})
	assert.NotEqual(t, nil, err)

	// The failure must not poison the key.
	rec, err := c.GetOrCreate(context.Background(), "1234", func(ctx context.Context) (model.IpoSummary, error) {
		return newRecord("1234", []string{"ok"}, clock.Now()), nil
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"ok"}, rec.Bullets)
}

func TestGetOrCreateConcurrentMissesShareOneGeneration(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	var generations int32
	release := make(chan struct{})
	generate := func(ctx context.Context) (model.IpoSummary, error) {
		atomic.AddInt32(&generations, 1)
		<-release
		return newRecord("1234", []string{"shared"}, clock.Now()), nil
	}

	const callers = 8
	var wg sync.WaitGroup
	var started sync.WaitGroup
	results := make([]model.IpoSummary, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		started.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			rec, err := c.GetOrCreate(context.Background(), "1234", generate)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = rec
		}()
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&generations))
	for _, rec := range results {
		assert.Equal(t, []string{"shared"}, rec.Bullets)
	}
}

func TestGetOrCreateSurvivesCallerCancellation(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	ctx, cancel := context.WithCancel(context.Background())

	// Mimics the real chain: every sub-operation gives up as soon as its
	// context is canceled and the failure degrades to a fallback record.
	generate := func(gctx context.Context) (model.IpoSummary, error) {
		cancel()
		select {
		case <-gctx.Done():
			return newRecord("1234", []string{"placeholder"}, clock.Now()), nil
		case <-time.After(50 * time.Millisecond):
			return newRecord("1234", []string{"full summary"}, clock.Now()), nil
		}
	}

	rec, err := c.GetOrCreate(ctx, "1234", generate)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"full summary"}, rec.Bullets)

	// The abandoned request must not have cached a degraded record.
	later, err := c.GetOrCreate(context.Background(), "1234", func(ctx context.Context) (model.IpoSummary, error) {
		t.Fatal("should be served from cache")
		return model.IpoSummary{}, nil
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, true, later.Cached)
	assert.Equal(t, []string{"full summary"}, later.Bullets)
}

func TestFreshResultDoesNotAliasStoredBullets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	fresh, err := c.GetOrCreate(context.Background(), "1234", func(ctx context.Context) (model.IpoSummary, error) {
		return newRecord("1234", []string{"original"}, clock.Now()), nil
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, false, fresh.Cached)

	fresh.Bullets[0] = "mutated"

	hit, _ := c.GetOrCreate(context.Background(), "1234", nil)
	assert.Equal(t, []string{"original"}, hit.Bullets)
}

func TestCachedCopyDoesNotAliasStoredBullets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := newSummaryCache(24*time.Hour, clock.Now)

	_, err := c.GetOrCreate(context.Background(), "1234", func(ctx context.Context) (model.IpoSummary, error) {
		return newRecord("1234", []string{"original"}, clock.Now()), nil
	})
	assert.Equal(t, nil, err)

	hit, _ := c.GetOrCreate(context.Background(), "1234", nil)
	hit.Bullets[0] = "mutated"

	again, _ := c.GetOrCreate(context.Background(), "1234", nil)
	assert.Equal(t, []string{"original"}, again.Bullets)
}

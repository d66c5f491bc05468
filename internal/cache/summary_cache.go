// Package cache holds the in-process summary cache. Entries live for a
// fixed TTL and expiry is checked lazily on access; there is no sweep,
// and nothing survives a process restart.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sakuya10969/capital-lens/internal/model"
)

const DefaultTTL = 24 * time.Hour

type entry struct {
	record   model.IpoSummary
	storedAt time.Time
}

// SummaryCache keys generated summaries by listing code. Concurrent
// misses for one code share a single generation through singleflight
// instead of each calling the backend.
type SummaryCache struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return newSummaryCache(ttl, time.Now)
}

func newSummaryCache(ttl time.Duration, now func() time.Time) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SummaryCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// GetOrCreate returns the cached summary for code when it is still
// fresh, marked Cached with its original GeneratedAt. Otherwise it runs
// generate, stores the result, and returns it.
func (c *SummaryCache) GetOrCreate(ctx context.Context, code string, generate func(context.Context) (model.IpoSummary, error)) (model.IpoSummary, error) {
	if record, ok := c.lookup(code); ok {
		return record, nil
	}

	v, err, _ := c.group.Do(code, func() (interface{}, error) {
		// A caller queued behind the flight may arrive after the leader
		// already stored the entry.
		if record, ok := c.lookup(code); ok {
			return record, nil
		}

		// The generation is shared by every concurrent caller and its
		// result lives for the full TTL, so it must not die with the
		// request that happened to start it. Sub-operations carry their
		// own timeouts.
		record, err := generate(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[code] = entry{record: record, storedAt: c.now()}
		c.mu.Unlock()

		return record, nil
	})
	if err != nil {
		return model.IpoSummary{}, err
	}

	record := v.(model.IpoSummary)
	record.Bullets = append([]string(nil), record.Bullets...)
	return record, nil
}

func (c *SummaryCache) lookup(code string) (model.IpoSummary, bool) {
	c.mu.RLock()
	e, ok := c.entries[code]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return model.IpoSummary{}, false
	}

	record := e.record
	record.Cached = true
	record.Bullets = append([]string(nil), e.record.Bullets...)
	return record, true
}

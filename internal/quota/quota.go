// Package quota counts public submissions per source per UTC day.
package quota

import (
	"context"
	"sync"
	"time"
)

// Counter records one attempt for source on the day of now and reports
// whether the attempt is within limit.
type Counter interface {
	Allow(ctx context.Context, source string, limit int, now time.Time) (bool, error)
	// Release returns one attempt recorded by Allow on the same day, for
	// submissions that were counted but never stored.
	Release(ctx context.Context, source string, now time.Time) error
}

func dayKey(source string, now time.Time) string {
	return "advice_quota:" + source + ":" + now.UTC().Format("2006-01-02")
}

// MemoryCounter keeps counts in process. Used when no Redis is configured,
// so limits are per instance and reset on restart.
type MemoryCounter struct {
	mu     sync.Mutex
	day    string
	counts map[string]int
}

// NewMemoryCounter creates an empty MemoryCounter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int)}
}

var _ Counter = (*MemoryCounter)(nil)

func (c *MemoryCounter) Allow(_ context.Context, source string, limit int, now time.Time) (bool, error) {
	day := now.UTC().Format("2006-01-02")
	key := dayKey(source, now)

	c.mu.Lock()
	defer c.mu.Unlock()
	// Only today's keys are ever consulted; drop the rest when the day rolls over.
	if day != c.day {
		c.day = day
		c.counts = make(map[string]int)
	}
	c.counts[key]++
	return c.counts[key] <= limit, nil
}

func (c *MemoryCounter) Release(_ context.Context, source string, now time.Time) error {
	key := dayKey(source, now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.day != now.UTC().Format("2006-01-02") {
		return nil
	}
	if c.counts[key] > 0 {
		c.counts[key]--
	}
	return nil
}

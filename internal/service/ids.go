package service

import (
	"sync"
	"time"
)

// IDGenerator hands out timestamp-derived ids that never repeat within a
// process, even when several tasks are created in the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewIDGenerator(seed int64) *IDGenerator {
	return &IDGenerator{last: seed}
}

func (g *IDGenerator) Next(now time.Time) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

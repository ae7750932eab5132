package marker

import (
	"sync"
	"time"

	"github.com/hakatashi/rhythm-medley/internal/viewport"
)

type pending struct {
	pos viewport.Point
	at  time.Time
}

// Queue buffers spawn requests from any goroutine until the frame loop drains
// them into a Manager. Draining preserves push order, so concurrent input
// still lands in the Manager in a single deterministic sequence.
type Queue struct {
	mu    sync.Mutex
	items []pending
	spare []pending
}

// Push records a spawn request. Safe for concurrent use.
func (q *Queue) Push(pos viewport.Point, now time.Time) {
	q.mu.Lock()
	q.items = append(q.items, pending{pos: pos, at: now})
	q.mu.Unlock()
}

// Len returns the number of requests waiting to be drained.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain spawns every queued request into m and returns how many it spawned.
// Call it from the goroutine that owns m.
func (q *Queue) Drain(m *Manager) int {
	q.mu.Lock()
	batch := q.items
	q.items = q.spare[:0]
	q.mu.Unlock()

	for _, p := range batch {
		m.Spawn(p.pos, p.at)
	}

	clear(batch)
	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}

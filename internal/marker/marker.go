// Package marker tracks the transient tap markers spawned by pointer input.
//
// A Manager owns the live markers in insertion order. Markers are appended by
// Spawn and dropped by Tick once their ttl has elapsed; nothing else mutates
// them. Both calls are meant to run on the frame loop's goroutine. Input that
// arrives on other goroutines goes through a Queue first.
package marker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hakatashi/rhythm-medley/internal/viewport"
)

// DefaultTTL is used when a Manager is created with a non-positive ttl.
const DefaultTTL = 500 * time.Millisecond

// Marker is a single tap event. It is never modified after creation.
type Marker struct {
	Position  viewport.Point
	CreatedAt time.Time
}

// Age returns how long the marker has been alive at now.
func (m Marker) Age(now time.Time) time.Duration {
	return now.Sub(m.CreatedAt)
}

// Progress returns the elapsed fraction of ttl at now, clamped to [0, 1].
func (m Marker) Progress(now time.Time, ttl time.Duration) float64 {
	if ttl <= 0 {
		return 1
	}
	p := float64(m.Age(now)) / float64(ttl)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Expired reports whether the marker is past its ttl at now. A marker is live
// for the half-open interval [CreatedAt, CreatedAt+ttl).
func (m Marker) Expired(now time.Time, ttl time.Duration) bool {
	return m.Age(now) >= ttl
}

// Manager owns the ordered collection of live markers.
type Manager struct {
	ttl     time.Duration
	markers []Marker

	// live mirrors len(markers) for metric callbacks, which run off the
	// frame loop.
	live  atomic.Int64
	instr *instruments
}

// NewManager creates a Manager whose markers live for ttl.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{ttl: ttl}
}

// TTL returns the marker lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Spawn appends a marker at pos created at now.
func (m *Manager) Spawn(pos viewport.Point, now time.Time) {
	m.markers = append(m.markers, Marker{Position: pos, CreatedAt: now})
	m.live.Store(int64(len(m.markers)))
	if m.instr != nil {
		m.instr.spawned.Add(context.Background(), 1)
	}
}

// Tick drops every marker that has expired at now, keeping the rest in
// insertion order. It returns the number of markers dropped.
func (m *Manager) Tick(now time.Time) int {
	kept := m.markers[:0]
	for _, mk := range m.markers {
		if !mk.Expired(now, m.ttl) {
			kept = append(kept, mk)
		}
	}
	expired := len(m.markers) - len(kept)

	// Release the dropped tail so the backing array does not pin it.
	clear(m.markers[len(kept):])
	m.markers = kept
	m.live.Store(int64(len(kept)))

	if expired > 0 && m.instr != nil {
		m.instr.expired.Add(context.Background(), int64(expired))
	}
	return expired
}

// Current returns a snapshot of the live markers, oldest first. The slice is
// a copy and stays valid after later Spawn or Tick calls.
func (m *Manager) Current() []Marker {
	if len(m.markers) == 0 {
		return nil
	}
	out := make([]Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

// Len returns the number of live markers.
func (m *Manager) Len() int {
	return len(m.markers)
}

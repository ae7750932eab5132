package headless

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/hakatashi/rhythm-medley/internal/clock"
	"github.com/hakatashi/rhythm-medley/internal/render"
)

// Tap is a scripted press at screen position (X, Y), At after the script
// starts.
type Tap struct {
	At   time.Duration
	X, Y float64
}

// RandomTaps returns n taps spaced every apart at uniformly random positions
// inside a w x h screen. The same seed always yields the same script.
func RandomTaps(seed int64, n int, every time.Duration, w, h int) []Tap {
	rng := rand.New(rand.NewSource(seed))
	taps := make([]Tap, n)
	for i := range taps {
		taps[i] = Tap{
			At: time.Duration(i+1) * every,
			X:  rng.Float64() * float64(w),
			Y:  rng.Float64() * float64(h),
		}
	}
	return taps
}

// ScriptedInput replays taps as render.InputManager presses. Each tap is
// reported once, on the first poll at or after its time.
type ScriptedInput struct {
	clock clock.Clock
	start time.Time
	taps  []Tap
	// Loop, if positive, restarts the script every Loop.
	Loop time.Duration

	mu    sync.Mutex
	next  int
	cycle int
	last  *Tap
}

// NewScriptedInput starts the script at clk's current time.
func NewScriptedInput(clk clock.Clock, taps []Tap) *ScriptedInput {
	sorted := append([]Tap(nil), taps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &ScriptedInput{clock: clk, start: clk.Now(), taps: sorted}
}

// JustPressedPointers implements render.InputManager.
func (s *ScriptedInput) JustPressedPointers() []render.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.clock.Now().Sub(s.start)
	var out []render.Pointer
	for len(s.taps) > 0 {
		if s.next == len(s.taps) {
			if s.Loop <= 0 {
				break
			}
			s.next = 0
			s.cycle++
		}
		tap := s.taps[s.next]
		if tap.At+time.Duration(s.cycle)*s.Loop > elapsed {
			break
		}
		out = append(out, render.Pointer{ID: s.next + 1, X: tap.X, Y: tap.Y})
		s.last = &s.taps[s.next]
		s.next++
	}
	return out
}

// CursorPosition reports the most recent tap as the hover position.
func (s *ScriptedInput) CursorPosition() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return -1, -1
	}
	return s.last.X, s.last.Y
}

// IsKeyJustPressed implements render.InputManager; scripts press no keys.
func (s *ScriptedInput) IsKeyJustPressed(render.Key) bool { return false }

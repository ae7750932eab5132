// Package headless runs the scene without a window: a ticker drives Layout,
// Update and Draw against a discard backend, and ScriptedInput supplies taps.
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/hakatashi/rhythm-medley/internal/clock"
	"github.com/hakatashi/rhythm-medley/internal/render"
)

// Config controls the no-window runner.
type Config struct {
	Hz int
	// Ticks stops the run after that many updates; 0 runs until ctx is done.
	Ticks uint64
	// Width and Height are the simulated window size handed to Layout.
	Width, Height int
	// Clock, if set, is advanced by one tick period before every update so the
	// scene sees the same time regardless of scheduling jitter.
	Clock *clock.Manual
	// Draw also renders every frame into a discard image.
	Draw bool
}

// Run drives game until ctx is cancelled, Ticks is reached or Update returns
// an error. It returns the number of completed ticks.
func Run(ctx context.Context, game render.Game, cfg Config) (uint64, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return 0, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	var screen *Image
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return tick, ctx.Err()
		case <-t.C:
			if cfg.Clock != nil {
				cfg.Clock.Advance(d)
			}

			w, h := game.Layout(cfg.Width, cfg.Height)
			if err := game.Update(); err != nil {
				return tick, err
			}
			if cfg.Draw {
				if screen == nil || screen.w != w || screen.h != h {
					screen = NewImage(w, h)
				}
				game.Draw(screen)
			}

			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return tick, nil
			}
		}
	}
}

// Package app wires input, the marker lifecycle and the scene into a
// render.Game the engine drives once per tick.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/hakatashi/rhythm-medley/internal/assets"
	"github.com/hakatashi/rhythm-medley/internal/clock"
	"github.com/hakatashi/rhythm-medley/internal/marker"
	"github.com/hakatashi/rhythm-medley/internal/render"
	"github.com/hakatashi/rhythm-medley/internal/scene"
	"github.com/hakatashi/rhythm-medley/internal/viewport"
)

var _ render.Game = (*App)(nil)

// ErrQuit is returned from Update when the user asks to exit.
var ErrQuit = errors.New("quit requested")

// Options configures an App.
type Options struct {
	Renderer render.Renderer
	Input    render.InputManager
	Assets   *assets.Set
	// Engine is optional; without it the fullscreen key does nothing.
	Engine render.Engine
	// Clock defaults to the system clock.
	Clock  clock.Clock
	TTL    time.Duration
	HUD    bool
	Logger zerolog.Logger
	// Meter defaults to the global OTel meter.
	Meter metric.Meter
}

// App is the touch scene.
type App struct {
	renderer render.Renderer
	input    render.InputManager
	assets   *assets.Set
	engine   render.Engine
	clock    clock.Clock
	log      zerolog.Logger

	scene   *scene.Scene
	markers *marker.Manager
	queue   marker.Queue

	start      time.Time
	size       viewport.Size
	sizeWarned bool
	showHUD    bool
	canvas     render.Image
	frame      uint64
}

// New creates the app. Renderer, Input and Assets are required.
func New(opts Options) (*App, error) {
	if opts.Renderer == nil || opts.Input == nil || opts.Assets == nil {
		return nil, fmt.Errorf("app: renderer, input and assets are required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Meter == nil {
		opts.Meter = marker.Meter()
	}

	markers := marker.NewManager(opts.TTL)
	if err := markers.Instrument(opts.Meter); err != nil {
		return nil, fmt.Errorf("failed to instrument markers: %w", err)
	}

	a := &App{
		renderer: opts.Renderer,
		input:    opts.Input,
		assets:   opts.Assets,
		engine:   opts.Engine,
		clock:    opts.Clock,
		log:      opts.Logger,
		scene:    scene.New(),
		markers:  markers,
		start:    opts.Clock.Now(),
		size:     viewport.Size{Width: viewport.CanvasWidth, Height: viewport.CanvasHeight},
		showHUD:  opts.HUD,
	}

	a.log.Info().
		Dur("ttl", markers.TTL()).
		Int("canvasWidth", viewport.CanvasWidth).
		Int("canvasHeight", viewport.CanvasHeight).
		Msg("Scene ready")
	return a, nil
}

// Update handles input, spawns and expires markers and advances animation.
func (a *App) Update() error {
	now := a.clock.Now()

	if a.input.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if a.input.IsKeyJustPressed(render.KeyH) {
		a.showHUD = !a.showHUD
	}
	if a.input.IsKeyJustPressed(render.KeyF) && a.engine != nil {
		a.engine.SetFullscreen(!a.engine.IsFullscreen())
	}

	pressed := a.input.JustPressedPointers()

	if err := viewport.Validate(a.size); err != nil {
		// Minimized windows report a zero size; drop input until it is back.
		if !a.sizeWarned {
			a.log.Warn().Err(err).Msg("Ignoring input")
			a.sizeWarned = true
		}
	} else {
		a.sizeWarned = false

		cx, cy := a.input.CursorPosition()
		a.scene.Box.Pointer(viewport.ToVirtual(a.size, cx, cy), false)

		lb := viewport.Letterbox(a.size)
		for _, p := range pressed {
			pos := viewport.ToVirtual(a.size, p.X, p.Y)
			if a.scene.Box.Pointer(pos, true) {
				a.log.Debug().Bool("enlarged", a.scene.Box.Enlarged).Msg("Box toggled")
			}
			a.queue.Push(pos, now)
			a.log.Debug().
				Int("pointer", p.ID).
				Stringer("pos", pos).
				Bool("inCanvas", lb.Contains(p.X, p.Y)).
				Msg("Tap")
		}
	}

	a.queue.Drain(a.markers)
	if expired := a.markers.Tick(now); expired > 0 {
		a.log.Trace().Int("expired", expired).Int("live", a.markers.Len()).Msg("Markers expired")
	}

	a.scene.Box.Step()
	a.frame++
	return nil
}

// Tap queues a marker at a screen position as if the pointer had been
// pressed there. Safe to call from any goroutine; the marker appears on the
// next Update.
func (a *App) Tap(sx, sy float64, size viewport.Size) error {
	if err := viewport.Validate(size); err != nil {
		return err
	}
	a.queue.Push(viewport.ToVirtual(size, sx, sy), a.clock.Now())
	return nil
}

// Close releases the offscreen canvas. A later Draw allocates a new one.
func (a *App) Close() {
	if a.canvas != nil {
		a.canvas.Dispose()
		a.canvas = nil
	}
}

// Layout uses the full outside size as the screen; the virtual canvas is
// letterboxed into it in Draw.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.size = viewport.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

// Markers returns the live markers, oldest first.
func (a *App) Markers() []marker.Marker {
	return a.markers.Current()
}

// Scene exposes the scene layout.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Frame returns the number of completed updates.
func (a *App) Frame() uint64 {
	return a.frame
}

// Size returns the last viewport size reported by Layout.
func (a *App) Size() viewport.Size {
	return a.size
}

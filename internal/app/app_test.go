package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/hakatashi/rhythm-medley/internal/assets"
	"github.com/hakatashi/rhythm-medley/internal/clock"
	"github.com/hakatashi/rhythm-medley/internal/render"
	"github.com/hakatashi/rhythm-medley/internal/render/rendertest"
	"github.com/hakatashi/rhythm-medley/internal/viewport"
)

type fakeEngine struct {
	fullscreen bool
}

func (e *fakeEngine) SetWindowSize(int, int) {}

func (e *fakeEngine) SetWindowTitle(string) {}

func (e *fakeEngine) SetWindowResizable(bool) {}

func (e *fakeEngine) SetTPS(int) {}

func (e *fakeEngine) SetFullscreen(fullscreen bool) {
	e.fullscreen = fullscreen
}

func (e *fakeEngine) IsFullscreen() bool {
	return e.fullscreen
}

func (e *fakeEngine) RunGame(render.Game) error {
	return nil
}

type fixture struct {
	app    *App
	input  *rendertest.Input
	clock  *clock.Manual
	r      *rendertest.Renderer
	engine *fakeEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := &rendertest.Renderer{}
	set, err := assets.Load(r, nil, assets.Paths{}, zerolog.Nop())
	require.NoError(t, err)

	f := &fixture{
		input:  &rendertest.Input{KeysDown: map[render.Key]bool{}},
		clock:  clock.NewManual(time.UnixMilli(10_000)),
		r:      r,
		engine: &fakeEngine{},
	}
	f.app, err = New(Options{
		Renderer: r,
		Input:    f.input,
		Assets:   set,
		Engine:   f.engine,
		Clock:    f.clock,
		TTL:      500 * time.Millisecond,
		Logger:   zerolog.Nop(),
		Meter:    noop.NewMeterProvider().Meter("test"),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) press(x, y float64) {
	f.input.Pressed = append(f.input.Pressed, render.Pointer{X: x, Y: y})
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestLayoutReturnsOutsideSize(t *testing.T) {
	f := newFixture(t)

	w, h := f.app.Layout(2048, 768)
	assert.Equal(t, 2048, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, viewport.Size{Width: 2048, Height: 768}, f.app.Size())
}

func TestPressSpawnsMarkerAtVirtualPosition(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		sx, sy float64
		want   viewport.Point
	}{
		{"center", 1024, 768, 512, 384, viewport.Point{X: 0, Y: 0}},
		{"top left", 1024, 768, 0, 0, viewport.Point{X: -512, Y: 384}},
		{"wide window", 2048, 768, 1124, 384, viewport.Point{X: 100, Y: 0}},
		{"tall window", 1024, 1536, 512, 0, viewport.Point{X: 0, Y: 768}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.app.Layout(tt.w, tt.h)
			f.press(tt.sx, tt.sy)

			require.NoError(t, f.app.Update())

			got := f.app.Markers()
			require.Len(t, got, 1)
			assert.InDelta(t, tt.want.X, got[0].Position.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got[0].Position.Y, 1e-9)
			assert.Equal(t, f.clock.Now(), got[0].CreatedAt)
		})
	}
}

func TestMarkersExpireAfterTTL(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(1024, 768)

	f.press(100, 100)
	f.press(200, 200)
	require.NoError(t, f.app.Update())
	assert.Len(t, f.app.Markers(), 2)

	f.clock.Advance(499 * time.Millisecond)
	require.NoError(t, f.app.Update())
	assert.Len(t, f.app.Markers(), 2)

	f.clock.Advance(time.Millisecond)
	require.NoError(t, f.app.Update())
	assert.Empty(t, f.app.Markers())
	assert.Equal(t, uint64(3), f.app.Frame())
}

func TestTapQueuesUntilUpdate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.Tap(1124, 384, viewport.Size{Width: 2048, Height: 768}))
	assert.Empty(t, f.app.Markers())

	require.NoError(t, f.app.Update())
	require.Len(t, f.app.Markers(), 1)
	assert.Equal(t, viewport.Point{X: 100, Y: 0}, f.app.Markers()[0].Position)

	err := f.app.Tap(1, 1, viewport.Size{})
	assert.ErrorIs(t, err, viewport.ErrInvalidViewport)
}

func TestPressOnBoxTogglesScale(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(1024, 768)

	// The box sits at virtual (0, -300).
	f.press(512, 684)
	require.NoError(t, f.app.Update())
	assert.True(t, f.app.Scene().Box.Enlarged)
	assert.Len(t, f.app.Markers(), 1, "a press on the box still spawns a marker")

	f.press(512, 684)
	require.NoError(t, f.app.Update())
	assert.False(t, f.app.Scene().Box.Enlarged)

	f.press(10, 10)
	require.NoError(t, f.app.Update())
	assert.False(t, f.app.Scene().Box.Enlarged)
}

func TestCursorHoverHighlightsBox(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(1024, 768)

	f.input.CursorX, f.input.CursorY = 512, 684
	require.NoError(t, f.app.Update())
	assert.True(t, f.app.Scene().Box.Hover)

	f.input.CursorX, f.input.CursorY = 0, 0
	require.NoError(t, f.app.Update())
	assert.False(t, f.app.Scene().Box.Hover)
}

func TestZeroSizeDropsInput(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(0, 0)

	f.press(10, 10)
	require.NoError(t, f.app.Update())
	assert.Empty(t, f.app.Markers())

	f.app.Layout(1024, 768)
	f.press(10, 10)
	require.NoError(t, f.app.Update())
	assert.Len(t, f.app.Markers(), 1)
}

func TestKeys(t *testing.T) {
	f := newFixture(t)

	f.input.KeysDown[render.KeyH] = true
	require.NoError(t, f.app.Update())
	assert.True(t, f.app.showHUD)

	f.input.KeysDown[render.KeyF] = true
	require.NoError(t, f.app.Update())
	assert.True(t, f.engine.fullscreen)

	f.input.KeysDown[render.KeyEscape] = true
	assert.ErrorIs(t, f.app.Update(), ErrQuit)
}

func TestBoxRotatesEveryUpdate(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, f.app.Update())
	}
	assert.InDelta(t, 0.1, f.app.Scene().Box.Rotation, 1e-9)
}

func TestDrawLetterboxesCanvas(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(2048, 768)
	screen := rendertest.NewImage("screen", 2048, 768)

	f.app.Draw(screen)

	require.Equal(t, 1, screen.Count("DrawImage"))
	var call rendertest.Call
	for _, c := range screen.Calls {
		if c.Op == "DrawImage" {
			call = c
		}
	}
	assert.Same(t, f.app.canvas, call.Src)

	x, y := call.GeoM.Apply(0, 0)
	assert.InDelta(t, 512, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	x, y = call.GeoM.Apply(viewport.CanvasWidth, viewport.CanvasHeight)
	assert.InDelta(t, 1536, x, 1e-9)
	assert.InDelta(t, 768, y, 1e-9)

	assert.Zero(t, screen.Count("DrawText"), "HUD off by default")
}

func TestDrawSceneContents(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(1024, 768)
	screen := rendertest.NewImage("screen", 1024, 768)

	f.app.Draw(screen)
	canvas := f.app.canvas.(*rendertest.Image)

	// Background plus three slices for each of the two notes.
	assert.Equal(t, 7, canvas.Count("DrawImage"))
	assert.Equal(t, 1, canvas.Count("DrawTriangles"))
	assert.Zero(t, canvas.Count("StrokeCircle"))

	f.press(512, 384)
	require.NoError(t, f.app.Update())
	f.app.Draw(screen)

	canvas = f.app.canvas.(*rendertest.Image)
	assert.Equal(t, 7+7+4, canvas.Count("DrawImage"), "second frame adds a ring and a tap note")
	assert.Equal(t, 1, canvas.Count("StrokeCircle"))
}

func TestDrawHUD(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(1024, 768)
	f.input.KeysDown[render.KeyH] = true
	require.NoError(t, f.app.Update())

	screen := rendertest.NewImage("screen", 1024, 768)
	f.app.Draw(screen)

	require.Equal(t, 1, screen.Count("DrawText"))
	for _, c := range screen.Calls {
		if c.Op == "DrawText" {
			assert.Contains(t, c.Text, "markers 0")
			assert.Contains(t, c.Text, "ttl 500ms")
		}
	}
}

func TestDrawZeroSizeSkipsCanvas(t *testing.T) {
	f := newFixture(t)
	screen := rendertest.NewImage("screen", 0, 0)

	f.app.Draw(screen)
	assert.Zero(t, screen.Count("DrawImage"))
	assert.Equal(t, 1, screen.Count("Fill"))
}

func TestTapLogReportsLetterboxMargin(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	f.app.log = zerolog.New(&buf).Level(zerolog.DebugLevel)
	f.app.Layout(2048, 768)

	f.press(100, 384)
	require.NoError(t, f.app.Update())
	assert.Contains(t, buf.String(), `"inCanvas":false`)
	require.Len(t, f.app.Markers(), 1, "taps in the margin still spawn markers")
	assert.InDelta(t, -924, f.app.Markers()[0].Position.X, 1e-9)

	buf.Reset()
	f.press(1024, 384)
	require.NoError(t, f.app.Update())
	assert.Contains(t, buf.String(), `"inCanvas":true`)
}

func TestCloseDisposesCanvas(t *testing.T) {
	f := newFixture(t)
	f.app.Layout(1024, 768)
	f.app.Close()

	screen := rendertest.NewImage("screen", 1024, 768)
	f.app.Draw(screen)
	canvas := f.app.canvas.(*rendertest.Image)

	f.app.Close()
	assert.Equal(t, 1, canvas.Count("Dispose"))
	assert.Nil(t, f.app.canvas)
}

package app

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hakatashi/rhythm-medley/internal/render"
	"github.com/hakatashi/rhythm-medley/internal/scene"
	"github.com/hakatashi/rhythm-medley/internal/viewport"
)

var (
	letterboxColor = color.RGBA{0, 0, 0, 255}
	hudPanelColor  = color.RGBA{0, 0, 0, 160}
	hudTextColor   = color.RGBA{230, 230, 240, 255}
)

const (
	hudTextSize = 14
	hudPadding  = 8
)

// Draw renders the scene onto the virtual canvas and fits the canvas into
// the screen with letterboxing.
func (a *App) Draw(screen render.Image) {
	now := a.clock.Now()

	if a.canvas == nil {
		a.canvas = a.renderer.NewImage(viewport.CanvasWidth, viewport.CanvasHeight)
	}
	a.canvas.Fill(letterboxColor)

	a.drawBackground(a.canvas)
	offset := scene.ScrollOffset(now.Sub(a.start))
	for _, n := range a.scene.Notes {
		a.drawNote(a.canvas, n, offset, 0)
	}
	a.drawBox(a.canvas)
	a.drawMarkers(a.canvas, now)

	w, h := screen.Size()
	size := viewport.Size{Width: float64(w), Height: float64(h)}
	screen.Fill(letterboxColor)
	if viewport.Validate(size) != nil {
		return
	}

	lb := viewport.Letterbox(size)
	geo := render.NewGeoM()
	geo.Scale(lb.Width/viewport.CanvasWidth, lb.Height/viewport.CanvasHeight)
	geo.Translate(lb.X, lb.Y)
	screen.DrawImage(a.canvas, &render.DrawImageOptions{GeoM: geo, Smooth: true})

	if a.showHUD {
		a.drawHUD(screen, size)
	}
}

func (a *App) drawBackground(dst render.Image) {
	bw, bh := a.assets.Background.Size()
	tex := scene.TextureSize{W: float64(bw), H: float64(bh)}
	w, h := scene.ImageSize(tex, a.scene.BackgroundWidth, 0, 1, 1)
	a.drawSprite(dst, a.assets.Background, viewport.Point{}, w, h, 0, 1, 0)
}

// drawNote draws the three slices of n. fade is in [0, 1].
func (a *App) drawNote(dst render.Image, n scene.Note, offset float64, fade float32) {
	left := textureSize(a.assets.NoteLeft)
	center := textureSize(a.assets.NoteCenter)
	right := textureSize(a.assets.NoteRight)

	slices := scene.NoteSlices(n, left, center, right, offset)
	images := [3]render.Image{a.assets.NoteLeft, a.assets.NoteCenter, a.assets.NoteRight}
	for i, s := range slices {
		a.drawSprite(dst, images[i], s.Center, s.Width, s.Height, s.U0, s.U1, fade)
	}
}

func (a *App) drawBox(dst render.Image) {
	corners := a.scene.Box.Corners()
	c := a.scene.Box.Color()

	vertices := make([]render.Vertex, len(corners))
	for i, p := range corners {
		x, y := viewport.VirtualToCanvas(p)
		vertices[i] = render.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(c.R) / 255,
			ColorG: float32(c.G) / 255,
			ColorB: float32(c.B) / 255,
			ColorA: float32(c.A) / 255,
		}
	}
	dst.DrawTriangles(vertices, []uint16{0, 1, 2, 0, 2, 3}, a.assets.Pixel, &render.DrawTrianglesOptions{AntiAlias: true})
}

// drawMarkers draws one tap effect per live marker: an expanding ring and a
// small note, both fading out over the marker's lifetime.
func (a *App) drawMarkers(dst render.Image, now time.Time) {
	ttl := a.markers.TTL()
	for _, m := range a.markers.Current() {
		p := m.Progress(now, ttl)
		radius, alpha := scene.TapRing(p)
		if alpha <= 0 {
			continue
		}
		fade := float32(1 - alpha)

		a.drawSprite(dst, a.assets.Ring, m.Position, radius*2, radius*2, 0, 1, fade)

		x, y := viewport.VirtualToCanvas(m.Position)
		ring := color.NRGBA{255, 255, 255, uint8(255 * alpha)}
		a.renderer.StrokeCircle(dst, float32(x), float32(y), float32(radius), float32(scene.TapRingWidth(p)), ring)

		a.drawNote(dst, scene.Note{X: m.Position.X, Y: m.Position.Y, Width: scene.TapNoteWidth}, 0, fade)
	}
}

func (a *App) drawHUD(screen render.Image, size viewport.Size) {
	line := fmt.Sprintf("markers %d  ttl %s  view %.0fx%.0f  scale %.2f",
		a.markers.Len(), a.markers.TTL(), size.Width, size.Height, viewport.Scale(size))
	tw, th := a.renderer.MeasureText(line, hudTextSize)
	a.renderer.FillRect(screen, 0, 0, float32(tw+2*hudPadding), float32(th+2*hudPadding), hudPanelColor)
	a.renderer.DrawText(screen, line, hudPadding, hudPadding, hudTextColor, hudTextSize)
}

// drawSprite draws the horizontal band [u0, u1] of img centered at center
// (virtual space), stretched to w x h canvas pixels.
func (a *App) drawSprite(dst, img render.Image, center viewport.Point, w, h, u0, u1 float64, fade float32) {
	b := img.Bounds()
	x0 := b.Min.X + int(u0*float64(b.Dx()))
	x1 := b.Min.X + int(u1*float64(b.Dx()))
	if x1 <= x0 {
		return
	}
	src := img
	if x0 != b.Min.X || x1 != b.Max.X {
		src = img.SubImage(image.Rect(x0, b.Min.Y, x1, b.Max.Y))
	}

	cx, cy := viewport.VirtualToCanvas(center)
	geo := render.NewGeoM()
	geo.Scale(w/float64(x1-x0), h/float64(b.Dy()))
	geo.Translate(cx-w/2, cy-h/2)
	dst.DrawImage(src, &render.DrawImageOptions{GeoM: geo, Fade: fade, Smooth: true})
}

func textureSize(img render.Image) scene.TextureSize {
	w, h := img.Size()
	return scene.TextureSize{W: float64(w), H: float64(h)}
}

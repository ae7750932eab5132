package headless

import (
	"image"
	"image/color"

	"github.com/hakatashi/rhythm-medley/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &geoM{} }
	}
}

// geoM satisfies render.GeoM; nothing reads the matrix back.
type geoM struct{}

func (*geoM) Translate(float64, float64) {}

func (*geoM) Scale(float64, float64) {}

// Image is a render.Image that keeps its bounds and counts draw calls but
// stores no pixels.
type Image struct {
	w, h  int
	rect  image.Rectangle
	draws *int
}

// NewImage returns a discard image of the given size.
func NewImage(w, h int) *Image {
	return &Image{w: w, h: h, rect: image.Rect(0, 0, w, h), draws: new(int)}
}

// Draws returns the number of draw calls made on this image and every
// sub-image taken from it.
func (i *Image) Draws() int { return *i.draws }

func (i *Image) Bounds() image.Rectangle { return i.rect }

func (i *Image) Size() (int, int) { return i.rect.Dx(), i.rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	r = r.Intersect(i.rect)
	return &Image{w: i.w, h: i.h, rect: r, draws: i.draws}
}

func (i *Image) Fill(color.Color) { *i.draws++ }

func (i *Image) DrawImage(render.Image, *render.DrawImageOptions) { *i.draws++ }

func (i *Image) DrawTriangles([]render.Vertex, []uint16, render.Image, *render.DrawTrianglesOptions) {
	*i.draws++
}

func (i *Image) Dispose() {}

// Renderer creates discard images. Text is measured with a fixed advance.
type Renderer struct{}

func (Renderer) NewImage(w, h int) render.Image { return NewImage(w, h) }

func (Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

func (Renderer) FillRect(dst render.Image, _, _, _, _ float32, clr color.Color) { dst.Fill(clr) }

func (Renderer) StrokeCircle(dst render.Image, _, _, _, _ float32, clr color.Color) { dst.Fill(clr) }

func (Renderer) DrawText(dst render.Image, _ string, _, _ float64, clr color.Color, _ float64) {
	dst.Fill(clr)
}

func (Renderer) MeasureText(text string, size float64) (float64, float64) {
	return float64(len(text)) * size * 0.6, size
}

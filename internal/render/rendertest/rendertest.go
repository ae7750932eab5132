// Package rendertest provides in-memory render backends for tests. Images
// record the calls made on them instead of drawing.
package rendertest

import (
	"errors"
	"image"
	"image/color"

	"github.com/hakatashi/rhythm-medley/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{} }
	}
}

// GeoM is an affine matrix matching Ebitengine's GeoM semantics.
type GeoM struct {
	// a, b, c, d, tx, ty with the identity stored as zero deltas.
	a1, b, c, d1, tx, ty float64
}

func (g *GeoM) Translate(tx, ty float64) {
	g.tx += tx
	g.ty += ty
}

func (g *GeoM) Scale(sx, sy float64) {
	a := (g.a1 + 1) * sx
	b := g.b * sx
	c := g.c * sy
	d := (g.d1 + 1) * sy
	g.a1, g.b, g.c, g.d1 = a-1, b, c, d-1
	g.tx *= sx
	g.ty *= sy
}

// Apply transforms (x, y).
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return (g.a1+1)*x + g.b*y + g.tx, g.c*x + (g.d1+1)*y + g.ty
}

// Call is one recorded draw operation.
type Call struct {
	Op    string
	Src   *Image
	GeoM  GeoM
	Fade  float32
	Color color.Color
	Text  string
	X, Y  float64
	R     float64
	N     int
}

// Image records draw calls.
type Image struct {
	Name   string
	W, H   int
	Filled color.Color
	Calls  []Call
	Parent *Image
	Rect   image.Rectangle
}

func NewImage(name string, w, h int) *Image {
	return &Image{Name: name, W: w, H: h, Rect: image.Rect(0, 0, w, h)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }

func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	r = r.Intersect(i.Rect)
	return &Image{Name: i.Name, W: r.Dx(), H: r.Dy(), Parent: i, Rect: r}
}

func (i *Image) Fill(clr color.Color) {
	i.Filled = clr
	i.Calls = append(i.Calls, Call{Op: "Fill", Color: clr})
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	c := Call{Op: "DrawImage", Src: src.(*Image)}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			c.GeoM = *g
		}
		c.Fade = opts.Fade
	}
	i.Calls = append(i.Calls, c)
}

func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, _ *render.DrawTrianglesOptions) {
	i.Calls = append(i.Calls, Call{Op: "DrawTriangles", Src: img.(*Image), N: len(indices)})
}

func (i *Image) Dispose() {
	i.Calls = append(i.Calls, Call{Op: "Dispose"})
}

// Count returns how many recorded calls have the given op.
func (i *Image) Count(op string) int {
	n := 0
	for _, c := range i.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Renderer creates Images and records shape and text calls on them.
type Renderer struct {
	Created int
}

func (r *Renderer) NewImage(w, h int) render.Image {
	r.Created++
	return NewImage("image", w, h)
}

func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	r.Created++
	b := src.Bounds()
	return NewImage("uploaded", b.Dx(), b.Dy())
}

func (r *Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	img := dst.(*Image)
	img.Calls = append(img.Calls, Call{Op: "FillRect", X: float64(x), Y: float64(y), Color: clr})
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, _ float32, clr color.Color) {
	img := dst.(*Image)
	img.Calls = append(img.Calls, Call{Op: "StrokeCircle", X: float64(x), Y: float64(y), R: float64(radius), Color: clr})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y float64, clr color.Color, _ float64) {
	img := dst.(*Image)
	img.Calls = append(img.Calls, Call{Op: "DrawText", Text: text, X: x, Y: y, Color: clr})
}

func (r *Renderer) MeasureText(text string, size float64) (float64, float64) {
	return float64(len(text)) * size * 0.5, size * 1.2
}

// Loader serves images by path; unknown paths fail.
type Loader struct {
	Images map[string]*Image
}

// ErrNotFound is returned by Loader for unknown paths.
var ErrNotFound = errors.New("rendertest: image not found")

func (l *Loader) LoadImage(path string) (render.Image, error) {
	if img, ok := l.Images[path]; ok {
		return img, nil
	}
	return nil, ErrNotFound
}

// Input is a scripted InputManager.
type Input struct {
	Pressed  []render.Pointer
	CursorX  float64
	CursorY  float64
	KeysDown map[render.Key]bool
}

func (in *Input) JustPressedPointers() []render.Pointer {
	p := in.Pressed
	in.Pressed = nil
	return p
}

func (in *Input) CursorPosition() (float64, float64) { return in.CursorX, in.CursorY }

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	down := in.KeysDown[key]
	delete(in.KeysDown, key)
	return down
}

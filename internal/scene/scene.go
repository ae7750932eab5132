// Package scene holds the layout math for the background, the scrolling notes,
// the tap effects and the rotating box. Nothing here draws; the app package
// turns these values into draw calls.
package scene

import (
	"image/color"
	"math"
	"time"

	"github.com/hakatashi/rhythm-medley/internal/viewport"
)

// Note texture bands. The caps take the outer 45% of their textures and the
// body stretches the middle 10% of the center texture.
const (
	capFraction   = 0.45
	bodyBandStart = 0.45
	bodyBandEnd   = 0.55
)

// Tap effect sizing in virtual pixels.
const (
	TapNoteWidth    = 80
	tapRingBase     = 24
	tapRingGrowth   = 56
	tapRingMinWidth = 1
)

// TextureSize is the pixel size of a loaded texture.
type TextureSize struct {
	W, H float64
}

// Note is a three-slice note sprite centered at (X, Y) whose stretchable body
// is Width wide.
type Note struct {
	X, Y  float64
	Width float64
}

// Slice is one textured quad of a note, in virtual space. U0 and U1 select the
// horizontal band of the source texture, as fractions of its width.
type Slice struct {
	Center        viewport.Point
	Width, Height float64
	U0, U1        float64
}

// NoteSlices lays out the left cap, the body and the right cap of n, shifted
// vertically by offset.
func NoteSlices(n Note, left, center, right TextureSize, offset float64) [3]Slice {
	y := n.Y + offset
	leftW := left.W * capFraction
	rightW := right.W * capFraction
	return [3]Slice{
		{
			Center: viewport.Point{X: n.X - n.Width/2 - leftW/2, Y: y},
			Width:  leftW,
			Height: left.H,
			U0:     0,
			U1:     capFraction,
		},
		{
			Center: viewport.Point{X: n.X, Y: y},
			Width:  n.Width,
			Height: center.H,
			U0:     bodyBandStart,
			U1:     bodyBandEnd,
		},
		{
			Center: viewport.Point{X: n.X + n.Width/2 + rightW/2, Y: y},
			Width:  rightW,
			Height: right.H,
			U0:     1 - capFraction,
			U1:     1,
		},
	}
}

// ScrollOffset is the vertical drift applied to every note: one virtual pixel
// per 100ms, wrapping every 1000 pixels.
func ScrollOffset(elapsed time.Duration) float64 {
	msec := float64(elapsed) / float64(time.Millisecond)
	return -math.Mod(msec/100, 1000)
}

// ImageSize resolves the drawn size of a texture. With neither width nor
// height given the texture's own size is scaled by scaleX/scaleY. With only
// one given the other follows the texture's aspect ratio.
func ImageSize(tex TextureSize, width, height, scaleX, scaleY float64) (w, h float64) {
	switch {
	case width == 0 && height == 0:
		// Per-axis on purpose: width takes scaleX and height takes scaleY.
		return tex.W * scaleX, tex.H * scaleY
	case width == 0:
		return height * tex.W / tex.H, height
	case height == 0:
		return width, width * tex.H / tex.W
	default:
		return width, height
	}
}

// TapRing returns the radius and opacity of the ring drawn for a marker at
// the given lifetime progress in [0, 1].
func TapRing(progress float64) (radius, alpha float64) {
	return tapRingBase + tapRingGrowth*progress, 1 - progress
}

// TapRingWidth is the ring stroke width at progress.
func TapRingWidth(progress float64) float64 {
	return math.Max(tapRingMinWidth, 6*(1-progress))
}

// Scene is the static layout plus the animated box.
type Scene struct {
	BackgroundWidth float64
	Notes           []Note
	Box             *Box
}

// New returns the default scene: a full-width background, two notes and the
// box below them.
func New() *Scene {
	return &Scene{
		BackgroundWidth: viewport.CanvasWidth,
		Notes: []Note{
			{X: 0, Y: 0, Width: 300},
			{X: 200, Y: 250, Width: 150},
		},
		Box: NewBox(viewport.Point{X: 0, Y: -300}, 100),
	}
}

// Box colors.
var (
	BoxColor      = color.RGBA{255, 165, 0, 255}   // orange
	BoxHoverColor = color.RGBA{255, 105, 180, 255} // hotpink
)

// BoxRotationStep is the rotation added per Step, in radians.
const BoxRotationStep = 0.01

// Box is a spinning square that highlights under the pointer and toggles a
// 1.5x scale when clicked.
type Box struct {
	Center   viewport.Point
	Size     float64
	Rotation float64
	Hover    bool
	Enlarged bool
}

// NewBox creates an unrotated box.
func NewBox(center viewport.Point, size float64) *Box {
	return &Box{Center: center, Size: size}
}

// Step advances the rotation by one frame.
func (b *Box) Step() {
	b.Rotation = math.Mod(b.Rotation+BoxRotationStep, 2*math.Pi)
}

// Scale is the current draw scale.
func (b *Box) Scale() float64 {
	if b.Enlarged {
		return 1.5
	}
	return 1
}

// Color returns the fill color for the current hover state.
func (b *Box) Color() color.RGBA {
	if b.Hover {
		return BoxHoverColor
	}
	return BoxColor
}

// Contains hit-tests p against the box's unrotated bounds.
func (b *Box) Contains(p viewport.Point) bool {
	half := b.Size * b.Scale() / 2
	return math.Abs(p.X-b.Center.X) <= half && math.Abs(p.Y-b.Center.Y) <= half
}

// Pointer updates the hover state for a pointer at p and toggles the scale if
// the pointer was pressed over the box. It reports whether the press hit.
func (b *Box) Pointer(p viewport.Point, pressed bool) bool {
	b.Hover = b.Contains(p)
	if pressed && b.Hover {
		b.Enlarged = !b.Enlarged
		return true
	}
	return false
}

// Corners returns the rotated corners in counter-clockwise order starting at
// the bottom-left.
func (b *Box) Corners() [4]viewport.Point {
	half := b.Size * b.Scale() / 2
	sin, cos := math.Sincos(b.Rotation)
	local := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}

	var out [4]viewport.Point
	for i, c := range local {
		out[i] = viewport.Point{
			X: b.Center.X + c[0]*cos - c[1]*sin,
			Y: b.Center.Y + c[0]*sin + c[1]*cos,
		}
	}
	return out
}

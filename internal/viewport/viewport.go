// Package viewport maps between on-screen pixels and the fixed virtual canvas
// all scene logic runs on.
//
// The virtual canvas is 1024x768 with its origin at the center and the Y axis
// pointing up. The real window is usually a different size, so the canvas is
// fitted with uniform "contain" scaling: the smaller of the two axis ratios is
// used and the leftover space becomes letterbox margins.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// Virtual canvas dimensions.
const (
	CanvasWidth  = 1024
	CanvasHeight = 768
)

// ErrInvalidViewport is returned by Validate for sizes that cannot be mapped.
var ErrInvalidViewport = errors.New("viewport: dimensions must be positive")

// Point is a position in virtual-canvas space.
type Point struct {
	X, Y float64
}

// Size is the on-screen viewport size in pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle in screen pixels (origin top-left).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Validate reports whether s can be used for mapping. Callers must validate
// before calling ToVirtual, which divides by the scale.
func Validate(s Size) error {
	if !(s.Width > 0) || !(s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, s.Width, s.Height)
	}
	return nil
}

// Scale returns the uniform contain-fit factor for s.
func Scale(s Size) float64 {
	return math.Min(s.Width/CanvasWidth, s.Height/CanvasHeight)
}

// ToVirtual converts a screen position (origin top-left, Y down) into virtual
// canvas coordinates. Points outside the window map outside the canvas; that
// is not an error.
func ToVirtual(s Size, sx, sy float64) Point {
	scale := Scale(s)
	cx := s.Width / 2
	cy := s.Height / 2
	return Point{
		X: (sx - cx) / scale,
		Y: -(sy - cy) / scale,
	}
}

// ToScreen is the inverse of ToVirtual.
func ToScreen(s Size, p Point) (sx, sy float64) {
	scale := Scale(s)
	return s.Width/2 + p.X*scale, s.Height/2 - p.Y*scale
}

// Letterbox returns the screen rectangle the canvas occupies inside s.
func Letterbox(s Size) Rect {
	scale := Scale(s)
	w := CanvasWidth * scale
	h := CanvasHeight * scale
	return Rect{
		X:      (s.Width - w) / 2,
		Y:      (s.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// Contains reports whether the screen position lies inside r.
func (r Rect) Contains(sx, sy float64) bool {
	return sx >= r.X && sx < r.X+r.Width && sy >= r.Y && sy < r.Y+r.Height
}

// VirtualToCanvas converts a virtual point to pixel coordinates of an
// unscaled CanvasWidth x CanvasHeight image (origin top-left, Y down).
func VirtualToCanvas(p Point) (cx, cy float64) {
	return p.X + CanvasWidth/2, CanvasHeight/2 - p.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Package render abstracts the graphics engine so scene and app code never
// import it directly. The only backend is internal/render/ebiten.
package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// scene logic.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image
	NewImageFromImage(src image.Image) Image

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y float64, clr color.Color, size float64)
	MeasureText(text string, size float64) (width, height float64)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	SubImage(r image.Rectangle) Image

	Fill(clr color.Color)

	DrawImage(src Image, opts *DrawImageOptions)
	DrawTriangles(vertices []Vertex, indices []uint16, img Image, opts *DrawTrianglesOptions)

	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
	// Fade scales opacity by 1-Fade: 0 draws the image unchanged, 1 draws
	// nothing.
	Fade float32
	// Smooth selects linear filtering instead of nearest-neighbor.
	Smooth bool
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	Translate(tx, ty float64)
	Scale(sx, sy float64)
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex represents a vertex for triangle rendering.
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// Pointer is a press that started this frame, in screen pixels.
type Pointer struct {
	// ID is 0 for the mouse and the touch ID plus one for touches.
	ID   int
	X, Y float64
}

// InputManager handles pointer and keyboard input.
type InputManager interface {
	// JustPressedPointers returns the mouse press and every touch that began
	// this frame.
	JustPressedPointers() []Pointer
	// CursorPosition returns the hover position of the mouse in screen pixels.
	CursorPosition() (x, y float64)
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the scene reacts to: Escape quits, F toggles
// fullscreen and H toggles the HUD.
const (
	KeyEscape Key = iota
	KeyF
	KeyH
)

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the scene logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the scene. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	SetTPS(tps int)
	SetFullscreen(fullscreen bool)
	IsFullscreen() bool

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

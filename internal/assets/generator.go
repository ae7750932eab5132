// Package assets provides the textures the scene draws: procedurally generated
// stand-ins, optionally replaced by image files from the config.
package assets

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Generated texture sizes.
const (
	BackgroundWidth  = 1024
	BackgroundHeight = 768
	NoteWidth        = 200
	NoteHeight       = 36
)

// ColorPalette defines the colors of the generated textures.
var ColorPalette = struct {
	SkyTop    color.RGBA
	SkyBottom color.RGBA
	Stripe    color.NRGBA
	Lane      color.NRGBA

	NoteBody   color.RGBA
	NoteEdge   color.RGBA
	NoteGlow   color.RGBA
	NoteAccent color.RGBA
}{
	SkyTop:    color.RGBA{18, 10, 48, 255},
	SkyBottom: color.RGBA{70, 24, 96, 255},
	Stripe:    color.NRGBA{255, 255, 255, 18},
	Lane:      color.NRGBA{120, 200, 255, 90},

	NoteBody:   color.RGBA{40, 190, 255, 255},
	NoteEdge:   color.RGBA{230, 250, 255, 255},
	NoteGlow:   color.RGBA{130, 230, 255, 255},
	NoteAccent: color.RGBA{255, 90, 170, 255},
}

// GenerateBackground renders the background at its full size. The gradient is
// drawn small and upscaled so the bands come out smooth.
func GenerateBackground() *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, 8, 48))
	for y := 0; y < 48; y++ {
		t := float64(y) / 47
		c := Mix(ColorPalette.SkyTop, ColorPalette.SkyBottom, t)
		for x := 0; x < 8; x++ {
			small.SetRGBA(x, y, c)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, BackgroundWidth, BackgroundHeight))
	xdraw.CatmullRom.Scale(img, img.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	// Diagonal stripes
	for y := 0; y < BackgroundHeight; y++ {
		for x := 0; x < BackgroundWidth; x++ {
			if (x+y)%64 < 6 {
				img.SetRGBA(x, y, over(img.RGBAAt(x, y), ColorPalette.Stripe))
			}
		}
	}

	// Vertical lanes converging toward the judgement line
	lane := image.NewUniform(ColorPalette.Lane)
	judge := BackgroundHeight * 3 / 4
	for i := 1; i < 8; i++ {
		x := i * BackgroundWidth / 8
		draw.Draw(img, image.Rect(x-1, 0, x+1, judge), lane, image.Point{}, draw.Over)
	}
	draw.Draw(img, image.Rect(0, judge-2, BackgroundWidth, judge+2), image.NewUniform(ColorPalette.NoteEdge), image.Point{}, draw.Over)

	return img
}

// NotePart selects which of the three note textures to generate.
type NotePart int

const (
	NoteLeft NotePart = iota
	NoteCenter
	NoteRight
)

// GenerateNote renders one of the three note textures. All three share the
// same size so any band of one lines up with the others; the caps are rounded
// on their outer side.
func GenerateNote(part NotePart) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, NoteWidth, NoteHeight))
	r := float64(NoteHeight) / 2

	for y := 0; y < NoteHeight; y++ {
		dy := math.Abs(float64(y) + 0.5 - r)
		for x := 0; x < NoteWidth; x++ {
			fx := float64(x) + 0.5

			// Distance to the rounded outer edge for the caps.
			var edge float64
			switch part {
			case NoteLeft:
				if fx < r {
					edge = math.Hypot(r-fx, dy) - r
				} else {
					edge = dy - r
				}
			case NoteRight:
				if fx > NoteWidth-r {
					edge = math.Hypot(fx-(NoteWidth-r), dy) - r
				} else {
					edge = dy - r
				}
			default:
				edge = dy - r
			}

			switch {
			case edge > 0:
				continue
			case edge > -3:
				img.SetRGBA(x, y, ColorPalette.NoteEdge)
			default:
				c := Mix(ColorPalette.NoteGlow, ColorPalette.NoteBody, dy/r)
				if part == NoteCenter && math.Abs(fx-NoteWidth/2) < 2 {
					c = ColorPalette.NoteAccent
				}
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// GenerateRing renders a soft white ring used as a fallback tap sprite.
func GenerateRing(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	outer := c - 1
	inner := outer * 0.7
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			if d <= outer && d >= inner {
				// Fade toward both edges of the ring.
				mid := (outer + inner) / 2
				a := 1 - math.Abs(d-mid)/((outer-inner)/2)
				img.SetRGBA(x, y, premultiplied(255, 255, 255, uint8(255*a)))
			}
		}
	}
	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Mix linearly interpolates between a and b; t is clamped to [0, 1].
func Mix(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

// over composites src onto an opaque dst.
func over(dst color.RGBA, src color.NRGBA) color.RGBA {
	return Mix(dst, color.RGBA{src.R, src.G, src.B, 255}, float64(src.A)/255)
}

func premultiplied(r, g, b, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: a}
}

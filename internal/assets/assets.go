package assets

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hakatashi/rhythm-medley/internal/render"
)

// Paths lists optional texture files. Empty entries use generated textures.
type Paths struct {
	Background string `mapstructure:"background"`
	NoteLeft   string `mapstructure:"noteLeft"`
	NoteCenter string `mapstructure:"noteCenter"`
	NoteRight  string `mapstructure:"noteRight"`
}

// Set is the loaded texture set handed to the app.
type Set struct {
	Background render.Image
	NoteLeft   render.Image
	NoteCenter render.Image
	NoteRight  render.Image
	Ring       render.Image
	// Pixel is a 1x1 white image used as the source for flat-colored
	// triangles.
	Pixel render.Image
}

const ringSize = 128

// Load builds the texture set. Files that fail to load are replaced by the
// generated texture and logged; Load itself only fails on a nil renderer.
func Load(r render.Renderer, loader render.ResourceLoader, paths Paths, log zerolog.Logger) (*Set, error) {
	if r == nil {
		return nil, fmt.Errorf("assets: renderer is nil")
	}

	load := func(name, path string, gen func() *image.RGBA) render.Image {
		if path != "" && loader != nil {
			img, err := loader.LoadImage(path)
			if err == nil {
				log.Info().Str("texture", name).Str("path", path).Msg("Loaded texture")
				return img
			}
			log.Warn().Err(err).Str("texture", name).Msg("Falling back to generated texture")
		}
		return r.NewImageFromImage(gen())
	}

	set := &Set{
		Background: load("background", paths.Background, GenerateBackground),
		NoteLeft:   load("noteLeft", paths.NoteLeft, func() *image.RGBA { return GenerateNote(NoteLeft) }),
		NoteCenter: load("noteCenter", paths.NoteCenter, func() *image.RGBA { return GenerateNote(NoteCenter) }),
		NoteRight:  load("noteRight", paths.NoteRight, func() *image.RGBA { return GenerateNote(NoteRight) }),
		Ring:       r.NewImageFromImage(GenerateRing(ringSize)),
	}

	set.Pixel = r.NewImage(1, 1)
	set.Pixel.Fill(color.White)

	return set, nil
}

// GenerateAndSave writes every generated texture as PNG into dir and returns
// the paths it wrote.
func GenerateAndSave(dir string) (Paths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("failed to create assets directory: %w", err)
	}

	paths := Paths{
		Background: filepath.Join(dir, "background.png"),
		NoteLeft:   filepath.Join(dir, "note_left.png"),
		NoteCenter: filepath.Join(dir, "note_center.png"),
		NoteRight:  filepath.Join(dir, "note_right.png"),
	}

	outputs := []struct {
		path string
		img  image.Image
	}{
		{paths.Background, GenerateBackground()},
		{paths.NoteLeft, GenerateNote(NoteLeft)},
		{paths.NoteCenter, GenerateNote(NoteCenter)},
		{paths.NoteRight, GenerateNote(NoteRight)},
	}

	for _, out := range outputs {
		if err := SavePNG(out.img, out.path); err != nil {
			return Paths{}, fmt.Errorf("failed to save %s: %w", filepath.Base(out.path), err)
		}
	}
	return paths, nil
}

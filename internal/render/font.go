package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed TrueType face at a fixed point size. Faces keep internal
// rasterization state, so a Font must not be shared across goroutines; the
// event loop is the intended owner.
type Font struct {
	face font.Face
	size float64
}

// LoadFont parses the TrueType file at path
func LoadFont(path string, size float64) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := ParseFont(data, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseFont parses raw TrueType bytes
func ParseFont(data []byte, size float64) (*Font, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if size <= 0 {
		size = 12
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	})
	return &Font{face: face, size: size}, nil
}

// DefaultFont returns the bundled Go Regular face
func DefaultFont(size float64) (*Font, error) {
	return ParseFont(goregular.TTF, size)
}

// Measure returns the horizontal advance of s in pixels
func (f *Font) Measure(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// Text rasterizes s onto a fresh transparent surface of the given height,
// exactly as wide as the advance of s. The baseline is placed so the glyph
// box is vertically centered.
func (f *Font) Text(s string, clr color.Color, height int) *image.RGBA {
	width := f.Measure(s)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height <= 0 {
		return img
	}

	m := f.face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	baseline := (height-ascent-descent)/2 + ascent

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: f.face,
		Dot:  fixed.P(0, baseline),
	}
	d.DrawString(s)
	return img
}

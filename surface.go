package strutbar

import (
	"image"
	"image/draw"
)

// Surface is an owned pixel buffer a component hands to the compositor.
// A nil *Surface means "nothing to draw".
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a transparent surface
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SurfaceFrom copies img into a new surface anchored at the origin
func SurfaceFrom(img image.Image) *Surface {
	b := img.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), img, b.Min, draw.Src)
	return s
}

// Fill paints the whole surface with c
func (s *Surface) Fill(c Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Width returns the surface width in pixels; nil surfaces are zero wide
func (s *Surface) Width() int {
	if s == nil {
		return 0
	}
	return s.img.Bounds().Dx()
}

// Height returns the surface height in pixels
func (s *Surface) Height() int {
	if s == nil {
		return 0
	}
	return s.img.Bounds().Dy()
}

// RGBA exposes the backing image for custom drawing
func (s *Surface) RGBA() *image.RGBA {
	return s.img
}

package strutbar

import (
	"fmt"
	"os"

	"github.com/1broseidon/strutbar/internal/render"
)

// LoadImage decodes PNG or JPEG bytes into a surface
func LoadImage(data []byte) (*Surface, error) {
	img, err := render.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return SurfaceFrom(img), nil
}

// LoadImageScaled decodes image bytes and scales them to the given height,
// preserving aspect ratio. Bars typically pass their own height.
func LoadImageScaled(data []byte, height int) (*Surface, error) {
	img, err := render.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return SurfaceFrom(render.ScaleToHeight(img, height)), nil
}

// LoadImageFile reads and decodes an image file
func LoadImageFile(path string) (*Surface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	s, err := LoadImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

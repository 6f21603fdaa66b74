package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
)

// DecodeImage decodes PNG or JPEG bytes
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ScaleToHeight resizes img to the given height preserving aspect ratio.
// An image already at the target height is returned unchanged.
func ScaleToHeight(img image.Image, height int) image.Image {
	b := img.Bounds()
	if height <= 0 || b.Dy() == 0 || b.Dy() == height {
		return img
	}
	width := b.Dx() * height / b.Dy()
	if width < 1 {
		width = 1
	}
	return transform.Resize(img, width, height, transform.Linear)
}

package strutbar

import "github.com/1broseidon/strutbar/internal/render"

// Font is a parsed TrueType face at a fixed point size. A Font keeps
// rasterization state and must not be shared across goroutines.
type Font = render.Font

// LoadFont parses the TrueType file at path
func LoadFont(path string, size float64) (*Font, error) {
	return render.LoadFont(path, size)
}

// DefaultFont returns the bundled Go Regular face
func DefaultFont(size float64) (*Font, error) {
	return render.DefaultFont(size)
}

// Text is a string rasterized for a bar: the surface spans the bar height
// and is exactly as wide as the rendered content.
type Text struct {
	surf    *Surface
	content string
}

// NewText rasterizes content for b. A nil font falls back to the bar's
// font, a transparent color to the bar's foreground color. Like the fonts
// themselves, texts must be created on the goroutine running the bar (or
// before Run).
func NewText(b *Bar, content string, font *Font, clr Color) *Text {
	if font == nil {
		font = b.font
	}
	if !clr.visible() {
		clr = b.fg
	}
	img := font.Text(content, clr, b.geom.Height)
	return &Text{surf: &Surface{img: img}, content: content}
}

// Surface returns the rasterized pixels
func (t *Text) Surface() *Surface {
	return t.surf
}

// Content returns the source string
func (t *Text) Content() string {
	return t.content
}

// Width returns the rendered width in pixels
func (t *Text) Width() int {
	return t.surf.Width()
}

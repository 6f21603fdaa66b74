package strutbar

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/strutbar/internal/xwin"
)

// BarBuilder assembles a Bar. Setters return the builder for chaining;
// Spawn connects to the windowing system and produces the bar.
type BarBuilder struct {
	name       string
	height     int
	background Color
	foreground Color
	bgImage    *Surface
	fontPath   string
	fontSize   float64
	output     string
	yoffset    int
	bottom     bool
	prec       Precedence
	logger     *slog.Logger
}

// NewBarBuilder returns a builder for a 30px top bar with a black
// background, white foreground and the bundled default font, docked to the
// primary output.
func NewBarBuilder() *BarBuilder {
	return &BarBuilder{
		name:       "strutbar",
		height:     30,
		background: NewColor(0, 0, 0, 255),
		foreground: NewColor(255, 255, 255, 255),
		fontSize:   12,
		prec:       DefaultPrecedence,
	}
}

// Name sets the window name
func (b *BarBuilder) Name(name string) *BarBuilder {
	b.name = name
	return b
}

// Height sets the bar height in pixels
func (b *BarBuilder) Height(px int) *BarBuilder {
	b.height = px
	return b
}

// BackgroundColor sets the bar-wide background fill
func (b *BarBuilder) BackgroundColor(c Color) *BarBuilder {
	b.background = c
	return b
}

// ForegroundColor sets the default text color
func (b *BarBuilder) ForegroundColor(c Color) *BarBuilder {
	b.foreground = c
	return b
}

// BackgroundImage draws img from the bar's left edge, over the background
// fill and under every component
func (b *BarBuilder) BackgroundImage(img *Surface) *BarBuilder {
	b.bgImage = img
	return b
}

// Font replaces the bundled default font with the TrueType file at path
func (b *BarBuilder) Font(path string, size float64) *BarBuilder {
	b.fontPath = path
	b.fontSize = size
	return b
}

// FontSize adjusts the point size of the bundled default font
func (b *BarBuilder) FontSize(size float64) *BarBuilder {
	b.fontSize = size
	return b
}

// Output docks the bar to the named RandR output instead of the primary one
func (b *BarBuilder) Output(name string) *BarBuilder {
	b.output = name
	return b
}

// TextYOffset shifts all foreground surfaces down by the given pixels
// (negative shifts up)
func (b *BarBuilder) TextYOffset(px int) *BarBuilder {
	b.yoffset = px
	return b
}

// Bottom docks the bar at the bottom edge of the output
func (b *BarBuilder) Bottom() *BarBuilder {
	b.bottom = true
	return b
}

// Precedence overrides the order in which alignment groups claim bar space
func (b *BarBuilder) Precedence(p Precedence) *BarBuilder {
	b.prec = p
	return b
}

// Logger sets the structured logger; the default is slog.Default()
func (b *BarBuilder) Logger(l *slog.Logger) *BarBuilder {
	b.logger = l
	return b
}

// Spawn connects to the X server, resolves the output, maps the dock window
// and returns a bar ready to Run.
func (b *BarBuilder) Spawn() (*Bar, error) {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	var font *Font
	var err error
	if b.fontPath != "" {
		font, err = LoadFont(b.fontPath, b.fontSize)
	} else {
		font, err = DefaultFont(b.fontSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	win, err := xwin.Connect(xwin.Options{
		Name:      b.name,
		Height:    b.height,
		Bottom:    b.bottom,
		Output:    b.output,
		BackPixel: b.background.argb(),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return newBar(win, barConfig{
		font:    font,
		fg:      b.foreground,
		bg:      b.background,
		bgImage: b.bgImage,
		yoffset: b.yoffset,
		prec:    b.prec,
	}, logger), nil
}

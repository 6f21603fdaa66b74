package strutbar

// Background is the backdrop of a component's slot: an optional fill color
// with an optional image drawn over it. The zero value paints nothing.
type Background struct {
	// Color fills the whole slot. The zero (transparent) color paints
	// nothing, leaving the bar background visible.
	Color Color

	// Image is drawn over the fill, vertically centered and clipped to the
	// slot
	Image *Surface

	// Alignment places the image horizontally within the slot
	Alignment Alignment
}

// BackgroundColor is a plain fill
func BackgroundColor(c Color) Background {
	return Background{Color: c}
}

// BackgroundImage centers img in the slot
func BackgroundImage(img *Surface) Background {
	return Background{Image: img}
}

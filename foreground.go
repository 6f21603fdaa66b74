package strutbar

// Foreground is the content surface of a component's slot. The zero value
// draws nothing.
type Foreground struct {
	Surface *Surface

	// Alignment places the surface horizontally within the slot
	Alignment Alignment

	// YOffset shifts the surface down from its vertically centered
	// position (negative shifts up). It is added to the bar-wide text
	// offset.
	YOffset int
}

// ForegroundText centers rendered text in the slot
func ForegroundText(t *Text) Foreground {
	if t == nil {
		return Foreground{}
	}
	return Foreground{Surface: t.Surface()}
}

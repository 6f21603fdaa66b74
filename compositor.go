package strutbar

import (
	"image"
	"image/draw"
	"log/slog"

	"github.com/1broseidon/strutbar/internal/layout"
	"github.com/1broseidon/strutbar/internal/xwin"
)

// compositor owns the bar's backing surface, paints component slots into it
// and pushes the result to the transport. It remembers the last committed
// layout so unchanged frames can be repainted partially.
type compositor struct {
	tr      transport
	surf    *Surface
	bg      Color
	bgImage *Surface
	yoffset int
	logger  *slog.Logger

	slots []layout.Slot
}

func newCompositor(tr transport, geom xwin.Geometry, bg Color, bgImage *Surface, yoffset int, logger *slog.Logger) *compositor {
	return &compositor{
		tr:      tr,
		surf:    NewSurface(geom.Width, geom.Height),
		bg:      bg,
		bgImage: bgImage,
		yoffset: yoffset,
		logger:  logger,
	}
}

// resize reallocates the backing surface and forgets the committed layout
func (c *compositor) resize(width, height int) {
	c.surf = NewSurface(width, height)
	c.slots = nil
}

// composite repaints the bar for slots and pushes it out. When the layout
// matches the last committed one and full is unset, only the slots in
// changed are repainted and pushed as dirty regions; otherwise the whole
// bar is redrawn.
func (c *compositor) composite(reg *registry, slots []layout.Slot, changed map[uint32]bool, full bool) error {
	if !full && !slotsEqual(c.slots, slots) {
		full = true
	}
	bounds := c.surf.img.Bounds()

	var dirty []image.Rectangle
	if full {
		c.clear(bounds)
		for _, s := range slots {
			c.paintSlot(reg.get(s.ID), s)
		}
		c.logger.Debug("full repaint", "slots", len(slots))
	} else {
		for _, s := range slots {
			if !changed[s.ID] {
				continue
			}
			r := image.Rect(s.X, 0, s.X+s.Width, bounds.Dy()).Intersect(bounds)
			if r.Empty() {
				continue
			}
			c.clear(r)
			c.paintSlot(reg.get(s.ID), s)
			dirty = append(dirty, r)
		}
		if len(dirty) == 0 {
			c.slots = slots
			return nil
		}
		c.logger.Debug("partial repaint", "regions", len(dirty))
	}

	c.slots = slots
	return c.tr.Push(c.surf.img, dirty)
}

// clear paints the bar background into r
func (c *compositor) clear(r image.Rectangle) {
	draw.Draw(c.surf.img, r, image.NewUniform(c.bg), image.Point{}, draw.Src)
	if c.bgImage != nil {
		ov := c.bgImage.img.Bounds().Intersect(r)
		if !ov.Empty() {
			draw.Draw(c.surf.img, ov, c.bgImage.img, ov.Min, draw.Over)
		}
	}
}

// paintSlot draws a member's background fill, background image and
// foreground surface into its slot, clipped to the slot
func (c *compositor) paintSlot(m *member, slot layout.Slot) {
	if m == nil || slot.Width <= 0 {
		return
	}
	barH := c.surf.img.Bounds().Dy()
	clip := image.Rect(slot.X, 0, slot.X+slot.Width, barH).Intersect(c.surf.img.Bounds())
	if clip.Empty() {
		return
	}

	if m.bg.Color.visible() {
		draw.Draw(c.surf.img, clip, image.NewUniform(m.bg.Color), image.Point{}, draw.Over)
	}
	if m.bg.Image != nil {
		c.blit(m.bg.Image, slot, m.bg.Alignment, 0, clip)
	}
	if m.fg.Surface != nil {
		c.blit(m.fg.Surface, slot, m.fg.Alignment, c.yoffset+m.fg.YOffset, clip)
	}
}

// blit draws surf into the slot with horizontal alignment and a vertical
// offset from the centered position
func (c *compositor) blit(s *Surface, slot layout.Slot, align Alignment, dy int, clip image.Rectangle) {
	sw, sh := s.Width(), s.Height()
	if sw == 0 || sh == 0 {
		return
	}
	x := slot.X + alignOffset(align, slot.Width, sw)
	y := (clip.Dy()-sh)/2 + dy

	target := image.Rect(x, y, x+sw, y+sh).Intersect(clip)
	if target.Empty() {
		return
	}
	src := image.Point{X: target.Min.X - x, Y: target.Min.Y - y}
	draw.Draw(c.surf.img, target, s.img, src, draw.Over)
}

func alignOffset(a Alignment, slotW, surfW int) int {
	switch a {
	case AlignLeft:
		return 0
	case AlignRight:
		return slotW - surfW
	default:
		return (slotW - surfW) / 2
	}
}

func slotsEqual(a, b []layout.Slot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

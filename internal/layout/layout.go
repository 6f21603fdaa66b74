package layout

// Alignment selects the bar region a component is grouped into
type Alignment int

const (
	Center Alignment = iota
	Left
	Right
)

func (a Alignment) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "center"
	}
}

// Width constrains the slot width of a component. The zero value imposes
// no constraint and the slot takes the component's natural width. A zero
// field means "unset" for Fixed, Min and Max.
type Width struct {
	// Fixed forces the slot to exactly this many pixels regardless of the
	// natural width. It overrides Min and Max.
	Fixed int
	Min   int
	Max   int

	// IgnoreBackground excludes the background surface from the natural
	// width measured by the caller. IgnoreForeground does the same for
	// the foreground surface. Neither is read by the engine itself.
	IgnoreBackground bool
	IgnoreForeground bool
}

// resolve computes the effective slot width from the natural surface width.
// The result never exceeds the bar width.
func (w Width) resolve(natural, barWidth int) int {
	px := natural
	if w.Fixed > 0 {
		px = w.Fixed
	} else {
		if px < w.Min {
			px = w.Min
		}
		if w.Max > 0 && px > w.Max {
			px = w.Max
		}
	}
	if px > barWidth {
		px = barWidth
	}
	if px < 0 {
		px = 0
	}
	return px
}

// Item describes one registered component as the engine sees it
type Item struct {
	ID    uint32
	Align Alignment
	// Natural is the widest surface the component last produced, in pixels
	Natural int
	Width   Width
}

// Slot is the placement computed for a surviving item
type Slot struct {
	ID    uint32
	Align Alignment
	X     int
	Width int
}

// Precedence orders the alignment groups by their claim on bar space.
// When groups would overlap, members of the later group are dropped.
type Precedence [3]Alignment

// DefaultPrecedence lets the edge groups win over the centered group
var DefaultPrecedence = Precedence{Left, Right, Center}

func (p Precedence) valid() bool {
	var seen [3]bool
	for _, a := range p {
		if a < Center || a > Right || seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

type span struct {
	lo, hi int
}

func overlaps(claimed []span, lo, hi int) bool {
	for _, s := range claimed {
		if lo < s.hi && s.lo < hi {
			return true
		}
	}
	return false
}

// Compute assigns a slot to every item that fits the bar. It is a pure
// function of its inputs: no side effects, and equal inputs always produce
// equal output.
//
// Each alignment group is placed independently: LEFT packs from x=0
// rightward, RIGHT packs from x=barWidth leftward, and CENTER is placed
// around the bar midpoint with any odd leftover pixel falling on the left
// side. Members keep registration order within their group. A group that
// exceeds the bar, or that would overlap a group placed earlier in prec,
// drops members from its registration-order end until it fits. Dropped
// items get no slot.
func Compute(items []Item, barWidth int, prec Precedence) []Slot {
	if barWidth <= 0 || len(items) == 0 {
		return nil
	}
	if !prec.valid() {
		prec = DefaultPrecedence
	}

	var groups [3][]Item
	widths := make(map[uint32]int, len(items))
	for _, it := range items {
		groups[it.Align] = append(groups[it.Align], it)
		widths[it.ID] = it.Width.resolve(it.Natural, barWidth)
	}

	var claimed []span
	placed := make(map[uint32]Slot, len(items))

	for _, align := range prec {
		members := groups[align]
		for len(members) > 0 {
			total := 0
			for _, m := range members {
				total += widths[m.ID]
			}

			var start int
			switch align {
			case Left:
				start = 0
			case Right:
				start = barWidth - total
			default:
				start = (barWidth - total) / 2
			}

			if start < 0 || start+total > barWidth || overlaps(claimed, start, start+total) {
				members = members[:len(members)-1]
				continue
			}

			if total > 0 {
				claimed = append(claimed, span{start, start + total})
			}
			if align == Right {
				// Right-aligned members stack leftward from the bar edge,
				// first registered outermost.
				x := barWidth
				for _, m := range members {
					x -= widths[m.ID]
					placed[m.ID] = Slot{ID: m.ID, Align: align, X: x, Width: widths[m.ID]}
				}
			} else {
				x := start
				for _, m := range members {
					placed[m.ID] = Slot{ID: m.ID, Align: align, X: x, Width: widths[m.ID]}
					x += widths[m.ID]
				}
			}
			break
		}
	}

	// Emit surviving slots in overall registration order
	slots := make([]Slot, 0, len(placed))
	for _, it := range items {
		if s, ok := placed[it.ID]; ok {
			slots = append(slots, s)
		}
	}
	return slots
}

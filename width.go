package strutbar

import "github.com/1broseidon/strutbar/internal/layout"

// Alignment places a component in the left, center or right group of the
// bar. The zero value is AlignCenter.
type Alignment = layout.Alignment

const (
	AlignCenter = layout.Center
	AlignLeft   = layout.Left
	AlignRight  = layout.Right
)

// Width constrains the slot width of a component. The zero value imposes no
// constraint: the slot takes the widest surface the component produces.
type Width = layout.Width

// Precedence orders the alignment groups by their claim on bar space; when
// groups would overlap, members of the later group are dropped.
type Precedence = layout.Precedence

// DefaultPrecedence lets the edge groups win over the centered group
var DefaultPrecedence = layout.DefaultPrecedence

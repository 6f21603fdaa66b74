package strutbar

import "time"

// Component produces the surfaces composited into its slot. Background
// returns the slot backdrop and Foreground the content drawn over it;
// either may be empty. Both run on the bar's event loop, so they may freely
// touch state shared with the component's event handling.
//
// A component failing to render keeps its previous surfaces on screen.
type Component interface {
	Background() (Background, error)
	Foreground() (Foreground, error)
}

// Aligner places the component in a specific group. Components without the
// method are centered.
type Aligner interface {
	Alignment() Alignment
}

// Sizer constrains the component's slot width. Components without the
// method take their natural width.
type Sizer interface {
	Width() Width
}

// Refresher asks for periodic re-renders. The interval is read once, when
// the component is added; zero or negative disables the timer, which is
// also the default for components without the method.
type Refresher interface {
	RedrawInterval() time.Duration
}

// Updater gates timed re-renders: the loop calls Update before producing
// surfaces, and a false return keeps the previous ones. Components without
// the method always re-render.
type Updater interface {
	Update() bool
}

// EventHandler receives pointer events landing inside the component's
// slot, with coordinates translated to the slot origin. Components without
// the method ignore pointer input.
type EventHandler interface {
	HandleEvent(Event)
}

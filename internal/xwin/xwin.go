package xwin

import "errors"

// Geometry describes the bar window's placement on the X screen
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Event is a windowing event delivered by the transport. The concrete
// types are Expose, ButtonPress, ButtonRelease, Motion and Configure.
type Event interface{}

// Expose asks for a full repaint of the bar
type Expose struct{}

// ButtonPress reports a pointer button going down over the bar.
// Coordinates are relative to the bar window.
type ButtonPress struct {
	Button uint8
	X, Y   int
}

// ButtonRelease reports a pointer button going up over the bar
type ButtonRelease struct {
	Button uint8
	X, Y   int
}

// Motion reports the pointer moving over the bar
type Motion struct {
	X, Y int
}

// Configure reports the window manager resizing the bar window
type Configure struct {
	Width, Height int
}

var (
	// ErrNoPrimaryOutput is returned when no output is configured and the X
	// server has no primary output set (xrandr --output <name> --primary).
	ErrNoPrimaryOutput = errors.New("no primary output set")

	// ErrOutputNotFound is returned when the configured output name does not
	// match any connected RandR output.
	ErrOutputNotFound = errors.New("output not found")
)

package strutbar

// MouseButton identifies the pointer button of a click
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
	ButtonOther
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	default:
		return "other"
	}
}

// Event is a pointer event dispatched to the component under the pointer.
// The concrete types are ClickEvent and MotionEvent.
type Event interface{}

// ClickEvent is a button press or release inside a component's slot.
// X and Y are relative to the slot's top-left corner.
type ClickEvent struct {
	Button   MouseButton
	X, Y     int
	Released bool
}

// MotionEvent is pointer movement inside a component's slot, relative to
// the slot's top-left corner
type MotionEvent struct {
	X, Y int
}

// buttonFromX maps a core X button detail; buttons 4 and 5 are the wheel
func buttonFromX(detail uint8) MouseButton {
	switch detail {
	case 1:
		return ButtonLeft
	case 2:
		return ButtonMiddle
	case 3:
		return ButtonRight
	case 4:
		return WheelUp
	case 5:
		return WheelDown
	default:
		return ButtonOther
	}
}

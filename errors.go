package strutbar

import (
	"errors"

	"github.com/1broseidon/strutbar/internal/xwin"
)

// ErrConnectionClosed is returned by Run when the windowing connection dies
// underneath the bar.
var ErrConnectionClosed = errors.New("connection to windowing system closed")

// Output resolution failures surfaced by Spawn, tested with errors.Is.
var (
	ErrNoPrimaryOutput = xwin.ErrNoPrimaryOutput
	ErrOutputNotFound  = xwin.ErrOutputNotFound
)

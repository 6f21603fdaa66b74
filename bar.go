package strutbar

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/1broseidon/strutbar/internal/layout"
	"github.com/1broseidon/strutbar/internal/timerq"
	"github.com/1broseidon/strutbar/internal/xwin"
)

// Geometry describes the bar window's placement on the screen
type Geometry = xwin.Geometry

// transport is the windowing collaborator the bar drives. *xwin.Window
// satisfies it; tests substitute in-memory fakes.
type transport interface {
	Geometry() xwin.Geometry
	Events() <-chan xwin.Event
	Push(img image.Image, dirty []image.Rectangle) error
	Close() error
}

// Bar is a status bar bound to one output. All component state lives on the
// single goroutine running the event loop; other goroutines talk to it
// through handles, which serialize into the command queue.
type Bar struct {
	tr     transport
	logger *slog.Logger
	geom   xwin.Geometry

	font *Font
	fg   Color
	prec Precedence

	commands chan command
	done     chan struct{}
	nextID   atomic.Uint32
	count    atomic.Int32

	// Owned by the loop goroutine
	reg       *registry
	timers    *timerq.Queue
	comp      *compositor
	slots     []layout.Slot
	width     int
	height    int
	needsFull bool
}

type barConfig struct {
	font    *Font
	fg      Color
	bg      Color
	bgImage *Surface
	yoffset int
	prec    Precedence
}

func newBar(tr transport, cfg barConfig, logger *slog.Logger) *Bar {
	geom := tr.Geometry()
	b := &Bar{
		tr:        tr,
		logger:    logger,
		geom:      geom,
		font:      cfg.font,
		fg:        cfg.fg,
		prec:      cfg.prec,
		commands:  make(chan command, 256),
		done:      make(chan struct{}),
		reg:       newRegistry(),
		timers:    timerq.New(),
		width:     geom.Width,
		height:    geom.Height,
		needsFull: true,
	}
	b.comp = newCompositor(tr, geom, cfg.bg, cfg.bgImage, cfg.yoffset, logger)
	return b
}

// Geometry returns the placement established when the bar was spawned
func (b *Bar) Geometry() Geometry {
	return b.geom
}

// ComponentCount reports the number of registered components
func (b *Bar) ComponentCount() int {
	return int(b.count.Load())
}

// Running reports whether the event loop has not yet exited
func (b *Bar) Running() bool {
	select {
	case <-b.done:
		return false
	default:
		return true
	}
}

// Done is closed when the event loop exits
func (b *Bar) Done() <-chan struct{} {
	return b.done
}

// Run drives the bar until Stop is requested, ctx is canceled or the
// windowing connection dies. One pass blocks for the next stimulus, then
// drains pending windowing events, fires due timers, drains pending
// commands and re-renders whatever became stale.
//
// Run owns all component state; it must be called exactly once.
func (b *Bar) Run(ctx context.Context) error {
	defer close(b.done)
	defer b.tr.Close()

	b.logger.Info("bar running", "width", b.width, "height", b.height)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	events := b.tr.Events()
	for {
		var timerC <-chan time.Time
		if when, ok := b.timers.Next(); ok {
			timer.Reset(time.Until(when))
			timerC = timer.C
		}

		stop := false
		select {
		case <-ctx.Done():
			stop = true
		case ev, ok := <-events:
			if !ok {
				b.logger.Error("windowing connection lost")
				return ErrConnectionClosed
			}
			b.handleEvent(ev)
		case <-timerC:
		case cmd := <-b.commands:
			stop = b.apply(cmd)
		}

		// Disarm so the next Reset starts from a drained timer
		if timerC != nil && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		closed := false
	drainEvents:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					closed = true
					break drainEvents
				}
				b.handleEvent(ev)
			default:
				break drainEvents
			}
		}
		if closed {
			b.logger.Error("windowing connection lost")
			return ErrConnectionClosed
		}

		for _, id := range b.timers.PopDue(time.Now()) {
			if m := b.reg.get(id); m != nil {
				m.stale = true
			}
		}

	drainCommands:
		for {
			select {
			case cmd := <-b.commands:
				if b.apply(cmd) {
					stop = true
				}
			default:
				break drainCommands
			}
		}

		b.refresh()

		if stop {
			b.logger.Info("bar stopped")
			return nil
		}
	}
}

// handleEvent reacts to one windowing event. Pointer events are dispatched
// to the component whose slot contains them; expose and resize mark the
// frame for a full repaint.
func (b *Bar) handleEvent(ev xwin.Event) {
	switch e := ev.(type) {
	case xwin.Expose:
		b.needsFull = true
	case xwin.ButtonPress:
		b.dispatchPointer(e.X, ClickEvent{Button: buttonFromX(e.Button), X: e.X, Y: e.Y})
	case xwin.ButtonRelease:
		b.dispatchPointer(e.X, ClickEvent{Button: buttonFromX(e.Button), X: e.X, Y: e.Y, Released: true})
	case xwin.Motion:
		b.dispatchPointer(e.X, MotionEvent{X: e.X, Y: e.Y})
	case xwin.Configure:
		if e.Width == b.width && e.Height == b.height {
			return
		}
		b.logger.Info("bar resized", "width", e.Width, "height", e.Height)
		b.width, b.height = e.Width, e.Height
		b.comp.resize(e.Width, e.Height)
		for _, m := range b.reg.order {
			m.stale = true
		}
		b.needsFull = true
	}
}

// dispatchPointer finds the slot containing x and delivers ev to its
// component with slot-relative coordinates. Events outside every slot, or
// over a component without an event handler, are discarded.
func (b *Bar) dispatchPointer(x int, ev Event) {
	for _, s := range b.slots {
		if x < s.X || x >= s.X+s.Width {
			continue
		}
		m := b.reg.get(s.ID)
		if m == nil {
			return
		}
		h, ok := m.comp.(EventHandler)
		if !ok {
			return
		}
		switch e := ev.(type) {
		case ClickEvent:
			e.X -= s.X
			h.HandleEvent(e)
		case MotionEvent:
			e.X -= s.X
			h.HandleEvent(e)
		}
		return
	}
}

// apply executes one command on loop state, reporting whether the loop
// should stop
func (b *Bar) apply(cmd command) bool {
	switch cmd.kind {
	case cmdAdd:
		m := newMember(cmd.id, cmd.comp)
		b.reg.add(m)
		b.count.Store(int32(b.reg.len()))
		if iv := m.refreshInterval(); iv > 0 {
			b.timers.Schedule(cmd.id, time.Now().Add(iv), iv)
		}
		b.logger.Debug("component added", "component", cmd.id, "alignment", m.alignment().String())
	case cmdRemove:
		if !b.reg.remove(cmd.id) {
			b.logger.Debug("remove for unknown component", "component", cmd.id)
			return false
		}
		b.timers.Remove(cmd.id)
		b.count.Store(int32(b.reg.len()))
		b.needsFull = true
		b.logger.Debug("component removed", "component", cmd.id)
	case cmdRedraw:
		if cmd.id == 0 {
			for _, m := range b.reg.order {
				m.stale = true
			}
			b.needsFull = true
			break
		}
		if m := b.reg.get(cmd.id); m != nil {
			m.stale = true
		} else {
			b.logger.Debug("redraw for unknown component", "component", cmd.id)
		}
	case cmdStop:
		return true
	}
	return false
}

// refresh renders stale members, recomputes the layout and composites the
// result. It is a no-op when nothing changed.
func (b *Bar) refresh() {
	changed := make(map[uint32]bool)
	for _, m := range b.reg.order {
		if !m.stale {
			continue
		}
		if m.render(b.logger) {
			changed[m.id] = true
		}
	}
	if len(changed) == 0 && !b.needsFull {
		return
	}

	items := b.reg.items()
	slots := layout.Compute(items, b.width, b.prec)
	if len(slots) < len(items) {
		b.logOverflow(items, slots)
	}
	b.slots = slots

	if err := b.comp.composite(b.reg, slots, changed, b.needsFull); err != nil {
		b.logger.Error("failed to push frame", "error", err)
	}
	b.needsFull = false
}

func (b *Bar) logOverflow(items []layout.Item, slots []layout.Slot) {
	placed := make(map[uint32]bool, len(slots))
	for _, s := range slots {
		placed[s.ID] = true
	}
	for _, it := range items {
		if !placed[it.ID] {
			b.logger.Debug("component does not fit, dropped from layout",
				"component", it.ID, "alignment", it.Align.String())
		}
	}
}

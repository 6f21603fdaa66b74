package strutbar

type cmdKind uint8

const (
	cmdAdd cmdKind = iota
	cmdRemove
	cmdRedraw
	cmdStop
)

// command is the envelope serialized through the bar's queue
type command struct {
	kind cmdKind
	id   uint32
	comp Component
}

// Add registers c and returns its handle. The component renders on the
// loop's next pass. Safe from any goroutine; on a stopped bar the
// registration is silently dropped.
func (b *Bar) Add(c Component) *Handle {
	id := b.nextID.Add(1)
	b.send(command{kind: cmdAdd, id: id, comp: c})
	return &Handle{id: id, bar: b}
}

// Redraw forces a re-render of every component and a full repaint
func (b *Bar) Redraw() {
	b.send(command{kind: cmdRedraw})
}

// Stop asks the loop to exit after finishing its current pass
func (b *Bar) Stop() {
	b.send(command{kind: cmdStop})
}

// send enqueues without ever blocking, so component callbacks running on
// the loop may post commands freely. Commands are dropped once the loop has
// exited, or under a sustained flood that fills the queue.
func (b *Bar) send(cmd command) bool {
	select {
	case <-b.done:
		return false
	default:
	}
	select {
	case b.commands <- cmd:
		return true
	default:
		b.logger.Warn("command queue full, dropping command", "kind", cmd.kind, "component", cmd.id)
		return false
	}
}

// Handle addresses one registered component from any goroutine. Operations
// are asynchronous requests to the event loop; on a stopped bar they become
// no-ops.
type Handle struct {
	id  uint32
	bar *Bar
}

// ID returns the bar-unique component id
func (h *Handle) ID() uint32 {
	return h.id
}

// Redraw re-renders just this component
func (h *Handle) Redraw() {
	h.bar.send(command{kind: cmdRedraw, id: h.id})
}

// Remove unregisters the component; its slot is reclaimed on the next pass.
// Removing twice, or removing an id the bar no longer knows, is harmless.
func (h *Handle) Remove() {
	h.bar.send(command{kind: cmdRemove, id: h.id})
}

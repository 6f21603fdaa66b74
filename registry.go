package strutbar

import (
	"log/slog"
	"time"

	"github.com/1broseidon/strutbar/internal/layout"
)

// member is a registered component plus everything the loop caches for it:
// the last produced surfaces and the stale flag driving re-renders.
type member struct {
	id   uint32
	comp Component

	bg    Background
	fg    Foreground
	stale bool
}

func newMember(id uint32, c Component) *member {
	return &member{id: id, comp: c, stale: true}
}

func (m *member) alignment() Alignment {
	if a, ok := m.comp.(Aligner); ok {
		return a.Alignment()
	}
	return AlignCenter
}

func (m *member) widthPolicy() Width {
	if s, ok := m.comp.(Sizer); ok {
		return s.Width()
	}
	return Width{}
}

func (m *member) refreshInterval() time.Duration {
	if r, ok := m.comp.(Refresher); ok {
		return r.RedrawInterval()
	}
	return 0
}

// natural is the widest surface the member last produced, honoring the
// ignore flags of its width policy
func (m *member) natural() int {
	pol := m.widthPolicy()
	w := 0
	if !pol.IgnoreBackground && m.bg.Image.Width() > w {
		w = m.bg.Image.Width()
	}
	if !pol.IgnoreForeground && m.fg.Surface.Width() > w {
		w = m.fg.Surface.Width()
	}
	return w
}

// render refreshes the member's surfaces, reporting whether anything was
// produced. A failing side keeps its previous surface; an Updater returning
// false skips the render entirely.
func (m *member) render(logger *slog.Logger) bool {
	m.stale = false
	if u, ok := m.comp.(Updater); ok && !u.Update() {
		return false
	}

	if bg, err := m.comp.Background(); err != nil {
		logger.Error("component background render failed", "component", m.id, "error", err)
	} else {
		m.bg = bg
	}
	if fg, err := m.comp.Foreground(); err != nil {
		logger.Error("component foreground render failed", "component", m.id, "error", err)
	} else {
		m.fg = fg
	}
	return true
}

// registry owns the ordered set of live components. Only the event loop
// touches it.
type registry struct {
	order []*member
	byID  map[uint32]*member
}

func newRegistry() *registry {
	return &registry{byID: make(map[uint32]*member)}
}

func (r *registry) add(m *member) {
	r.order = append(r.order, m)
	r.byID[m.id] = m
}

// remove unregisters id, reporting whether it was present
func (r *registry) remove(id uint32) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, m := range r.order {
		if m.id == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *registry) get(id uint32) *member {
	return r.byID[id]
}

func (r *registry) len() int {
	return len(r.order)
}

// items projects the registry into layout input, in registration order
func (r *registry) items() []layout.Item {
	items := make([]layout.Item, 0, len(r.order))
	for _, m := range r.order {
		items = append(items, layout.Item{
			ID:      m.id,
			Align:   m.alignment(),
			Natural: m.natural(),
			Width:   m.widthPolicy(),
		})
	}
	return items
}

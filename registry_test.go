package strutbar

import (
	"errors"
	"testing"
	"time"
)

// plainComp implements only the two required surface methods.
type plainComp struct {
	bg Background
	fg Foreground
}

func (p *plainComp) Background() (Background, error) { return p.bg, nil }
func (p *plainComp) Foreground() (Foreground, error) { return p.fg, nil }

// capComp implements every optional capability.
type capComp struct {
	plainComp
	align Alignment
	width Width
	iv    time.Duration
}

func (c *capComp) Alignment() Alignment          { return c.align }
func (c *capComp) Width() Width                  { return c.width }
func (c *capComp) RedrawInterval() time.Duration { return c.iv }

// flakyComp fails whichever side has an error set.
type flakyComp struct {
	bg    Background
	fg    Foreground
	bgErr error
	fgErr error
}

func (f *flakyComp) Background() (Background, error) { return f.bg, f.bgErr }
func (f *flakyComp) Foreground() (Foreground, error) { return f.fg, f.fgErr }

func TestMember_DefaultsWithoutCapabilities(t *testing.T) {
	m := newMember(1, &plainComp{})
	if !m.stale {
		t.Fatalf("expected a fresh member to be stale")
	}
	if got := m.alignment(); got != AlignCenter {
		t.Fatalf("expected center alignment by default, got %v", got)
	}
	if got := m.widthPolicy(); got != (Width{}) {
		t.Fatalf("expected an unconstrained width by default, got %+v", got)
	}
	if got := m.refreshInterval(); got != 0 {
		t.Fatalf("expected no refresh interval by default, got %v", got)
	}
}

func TestMember_CapabilitiesAreRead(t *testing.T) {
	comp := &capComp{
		align: AlignRight,
		width: Width{Fixed: 80},
		iv:    5 * time.Second,
	}
	m := newMember(1, comp)
	if got := m.alignment(); got != AlignRight {
		t.Fatalf("expected right alignment, got %v", got)
	}
	if got := m.widthPolicy(); got.Fixed != 80 {
		t.Fatalf("expected fixed width 80, got %+v", got)
	}
	if got := m.refreshInterval(); got != 5*time.Second {
		t.Fatalf("expected 5s interval, got %v", got)
	}
}

func TestMember_NaturalWidth(t *testing.T) {
	bg := Background{Image: solidSurface(30, 10, NewColor(1, 2, 3, 255))}
	fg := Foreground{Surface: solidSurface(50, 10, NewColor(4, 5, 6, 255))}

	m := newMember(1, &plainComp{bg: bg, fg: fg})
	m.render(discardLogger())
	if got := m.natural(); got != 50 {
		t.Fatalf("expected the widest surface to win, got %d", got)
	}

	m = newMember(2, &capComp{
		plainComp: plainComp{bg: bg, fg: fg},
		width:     Width{IgnoreForeground: true},
	})
	m.render(discardLogger())
	if got := m.natural(); got != 30 {
		t.Fatalf("expected the background width with the foreground ignored, got %d", got)
	}

	m = newMember(3, &capComp{
		plainComp: plainComp{bg: bg, fg: fg},
		width:     Width{IgnoreBackground: true, IgnoreForeground: true},
	})
	m.render(discardLogger())
	if got := m.natural(); got != 0 {
		t.Fatalf("expected zero natural width with both sides ignored, got %d", got)
	}
}

func TestMember_RenderFailureKeepsPreviousSurfaces(t *testing.T) {
	first := solidSurface(10, 10, NewColor(255, 0, 0, 255))
	second := solidSurface(20, 10, NewColor(0, 255, 0, 255))
	comp := &flakyComp{
		bg: Background{Color: NewColor(1, 2, 3, 255)},
		fg: Foreground{Surface: first},
	}
	m := newMember(1, comp)

	if !m.render(discardLogger()) {
		t.Fatalf("expected the first render to succeed")
	}
	if m.fg.Surface != first {
		t.Fatalf("expected the foreground surface to be captured")
	}

	comp.fg = Foreground{Surface: second}
	comp.fgErr = errors.New("boom")
	comp.bg = Background{Color: NewColor(9, 9, 9, 255)}
	if !m.render(discardLogger()) {
		t.Fatalf("expected a partially failing render to still report progress")
	}
	if m.fg.Surface != first {
		t.Fatalf("expected the failing side to keep its previous surface")
	}
	if m.bg.Color != NewColor(9, 9, 9, 255) {
		t.Fatalf("expected the healthy side to update, got %+v", m.bg.Color)
	}

	comp.fgErr = nil
	comp.bgErr = errors.New("boom")
	m.render(discardLogger())
	if m.fg.Surface != second {
		t.Fatalf("expected the recovered side to update")
	}
	if m.bg.Color != NewColor(9, 9, 9, 255) {
		t.Fatalf("expected the failing background to keep its previous value")
	}
}

func TestRegistry_AddRemoveKeepsOrder(t *testing.T) {
	r := newRegistry()
	for id := uint32(1); id <= 3; id++ {
		r.add(newMember(id, &plainComp{}))
	}
	if r.len() != 3 {
		t.Fatalf("expected 3 members, got %d", r.len())
	}

	if !r.remove(2) {
		t.Fatalf("expected removing a known member to report true")
	}
	if r.remove(2) {
		t.Fatalf("expected removing twice to report false")
	}
	if r.get(2) != nil {
		t.Fatalf("expected the removed member to be gone")
	}

	ids := make([]uint32, 0, r.len())
	for _, m := range r.order {
		ids = append(ids, m.id)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("expected registration order [1 3], got %v", ids)
	}
}

func TestRegistry_ItemsProjectInOrder(t *testing.T) {
	r := newRegistry()
	a := newMember(1, &plainComp{fg: Foreground{Surface: solidSurface(40, 10, NewColor(1, 1, 1, 255))}})
	b := newMember(2, &capComp{align: AlignLeft, width: Width{Fixed: 25}})
	a.render(discardLogger())
	b.render(discardLogger())
	r.add(a)
	r.add(b)

	items := r.items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Align != AlignCenter || items[0].Natural != 40 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].ID != 2 || items[1].Align != AlignLeft || items[1].Width.Fixed != 25 {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

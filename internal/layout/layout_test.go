package layout

import (
	"reflect"
	"testing"
)

func TestCompute_ThreeGroupsSingleMembers(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 50},
		{ID: 2, Align: Center, Natural: 25, Width: Width{Fixed: 40}},
		{ID: 3, Align: Right, Natural: 30},
	}

	slots := Compute(items, 200, DefaultPrecedence)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	// Left packs from 0, center start = (200-40)/2 = 80, right = 200-30 = 170
	if slots[0].X != 0 || slots[0].Width != 50 {
		t.Fatalf("left slot: expected x=0 w=50, got x=%d w=%d", slots[0].X, slots[0].Width)
	}
	if slots[1].X != 80 || slots[1].Width != 40 {
		t.Fatalf("center slot: expected x=80 w=40, got x=%d w=%d", slots[1].X, slots[1].Width)
	}
	if slots[2].X != 170 || slots[2].Width != 30 {
		t.Fatalf("right slot: expected x=170 w=30, got x=%d w=%d", slots[2].X, slots[2].Width)
	}
}

func TestCompute_LeftOverflowDropsNewest(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 80},
		{ID: 2, Align: Left, Natural: 80},
	}

	// 80+80 exceeds the 100px bar, so the later registration is dropped
	// whole rather than squeezed into the remaining 20px.
	slots := Compute(items, 100, DefaultPrecedence)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].ID != 1 {
		t.Fatalf("expected survivor id=1, got id=%d", slots[0].ID)
	}
	if slots[0].X != 0 || slots[0].Width != 80 {
		t.Fatalf("expected x=0 w=80, got x=%d w=%d", slots[0].X, slots[0].Width)
	}
}

func TestCompute_SameInputSameOutput(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 30},
		{ID: 2, Align: Center, Natural: 41},
		{ID: 3, Align: Right, Natural: 25},
		{ID: 4, Align: Left, Natural: 12, Width: Width{Min: 20}},
	}

	first := Compute(items, 300, DefaultPrecedence)
	second := Compute(items, 300, DefaultPrecedence)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input:\n%v\n%v", first, second)
	}
}

func TestCompute_MultiMemberLeftPacksInOrder(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 30},
		{ID: 2, Align: Left, Natural: 20},
		{ID: 3, Align: Left, Natural: 10},
	}

	slots := Compute(items, 200, DefaultPrecedence)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	// Members abut in registration order: 0, 30, 50
	wantX := []int{0, 30, 50}
	for i, s := range slots {
		if s.X != wantX[i] {
			t.Fatalf("slot %d: expected x=%d, got x=%d", i, wantX[i], s.X)
		}
	}
}

func TestCompute_RightGroupStacksLeftward(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Right, Natural: 30},
		{ID: 2, Align: Right, Natural: 20},
	}

	slots := Compute(items, 200, DefaultPrecedence)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	// First registration hugs the right edge: 200-30=170, then 170-20=150
	if slots[0].X != 170 {
		t.Fatalf("expected first right slot x=170, got %d", slots[0].X)
	}
	if slots[1].X != 150 {
		t.Fatalf("expected second right slot x=150, got %d", slots[1].X)
	}
}

func TestCompute_CenterOddPixelFallsLeft(t *testing.T) {
	items := []Item{{ID: 1, Align: Center, Natural: 40}}

	// (101-40)/2 = 30 after truncation, so the slot sits half a pixel
	// left of the true midpoint.
	slots := Compute(items, 101, DefaultPrecedence)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].X != 30 {
		t.Fatalf("expected x=30, got %d", slots[0].X)
	}
}

func TestCompute_FixedOverridesNatural(t *testing.T) {
	items := []Item{{ID: 1, Align: Left, Natural: 10, Width: Width{Fixed: 80}}}

	slots := Compute(items, 200, DefaultPrecedence)
	if len(slots) != 1 || slots[0].Width != 80 {
		t.Fatalf("expected fixed width 80, got %+v", slots)
	}
}

func TestCompute_MinMaxBoundNatural(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 10, Width: Width{Min: 25}},
		{ID: 2, Align: Left, Natural: 90, Width: Width{Max: 40}},
	}

	slots := Compute(items, 200, DefaultPrecedence)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Width != 25 {
		t.Fatalf("expected min-widened slot of 25, got %d", slots[0].Width)
	}
	if slots[1].Width != 40 {
		t.Fatalf("expected max-capped slot of 40, got %d", slots[1].Width)
	}
}

func TestCompute_OverwideComponentClampedToBar(t *testing.T) {
	items := []Item{{ID: 1, Align: Left, Natural: 0, Width: Width{Fixed: 250}}}

	slots := Compute(items, 200, DefaultPrecedence)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].X != 0 || slots[0].Width != 200 {
		t.Fatalf("expected x=0 w=200, got x=%d w=%d", slots[0].X, slots[0].Width)
	}
}

func TestCompute_DefaultPrecedenceDropsCenterOnCollision(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 45},
		{ID: 2, Align: Right, Natural: 45},
		{ID: 3, Align: Center, Natural: 40},
	}

	// Center would sit at [30,70) which collides with left [0,45) and
	// right [55,100); with the default precedence the center member loses.
	slots := Compute(items, 100, DefaultPrecedence)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.ID == 3 {
			t.Fatalf("expected center component to be dropped, got slot %+v", s)
		}
	}
}

func TestCompute_CustomPrecedenceCenterWins(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 45},
		{ID: 2, Align: Right, Natural: 45},
		{ID: 3, Align: Center, Natural: 40},
	}

	slots := Compute(items, 100, Precedence{Center, Left, Right})
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].ID != 3 {
		t.Fatalf("expected center survivor, got id=%d", slots[0].ID)
	}
}

func TestCompute_InvalidPrecedenceFallsBackToDefault(t *testing.T) {
	items := []Item{
		{ID: 1, Align: Left, Natural: 45},
		{ID: 2, Align: Center, Natural: 40},
	}

	// Duplicate entries are not a permutation; behaves like the default.
	bad := Precedence{Center, Center, Right}
	got := Compute(items, 100, bad)
	want := Compute(items, 100, DefaultPrecedence)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected default-precedence result, got %v want %v", got, want)
	}
}

func TestCompute_EmptyInputs(t *testing.T) {
	if slots := Compute(nil, 200, DefaultPrecedence); slots != nil {
		t.Fatalf("expected nil slots for no items, got %v", slots)
	}
	items := []Item{{ID: 1, Align: Left, Natural: 10}}
	if slots := Compute(items, 0, DefaultPrecedence); slots != nil {
		t.Fatalf("expected nil slots for zero-width bar, got %v", slots)
	}
}

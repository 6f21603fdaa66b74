package strutbar

import "testing"

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{R: 255, A: 255}},
		{"#00ff00ff", Color{G: 255, A: 255}},
		{"#11223344", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"c5c8c6", Color{R: 0xc5, G: 0xc8, B: 0xc6, A: 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseColor_Rejects(t *testing.T) {
	for _, in := range []string{"", "red", "#12", "#12345", "#gg0000"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("expected ParseColor(%q) to fail", in)
		}
	}
}

func TestColor_RGBA(t *testing.T) {
	r, g, b, a := NewColor(255, 0, 0, 255).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Fatalf("unexpected channels: %d %d %d %d", r, g, b, a)
	}
}

func TestColor_ARGBPacking(t *testing.T) {
	if got := NewColor(0x11, 0x22, 0x33, 0x44).argb(); got != 0x44112233 {
		t.Fatalf("expected 0x44112233, got %#x", got)
	}
}

func TestColor_Visible(t *testing.T) {
	if (Color{}).visible() {
		t.Fatalf("expected the zero color to be invisible")
	}
	if !NewColor(0, 0, 0, 1).visible() {
		t.Fatalf("expected any non-zero alpha to be visible")
	}
}

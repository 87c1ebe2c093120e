package colors

import "testing"

func TestRGBA8(t *testing.T) {
	r, g, b, a := Color{1.5, 0.5, -1, 1}.RGBA8()
	if r != 255 || g != 128 || b != 0 || a != 255 {
		t.Errorf("RGBA8 = %d %d %d %d", r, g, b, a)
	}
}

func TestOver(t *testing.T) {
	got := White.WithAlpha(0.5).Over(Black)
	want := Color{0.5, 0.5, 0.5, 1}
	if got != want {
		t.Errorf("Over = %v, want %v", got, want)
	}
	if got := Red.Over(Blue); got != Red {
		t.Errorf("opaque Over = %v, want %v", got, Red)
	}
}

package scratch

import "testing"

func TestSprintf(t *testing.T) {
	a := New(8)
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"fps %d", []any{60}, "fps 60"},
		{"%.2f ms", []any{1.2345}, "1.23 ms"},
		{"%f", []any{float32(0.5)}, "0.500"},
		{"100%%", nil, "100%"},
		{"%s=%v", []any{"vsync", true}, "vsync=true"},
		{"%d/%d", []any{1}, "1/"},
		{"%q", []any{1}, "%q"},
	}
	for _, tt := range tests {
		if got := a.Sprintf(tt.format, tt.args...); got != tt.want {
			t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestResetKeepsCopies(t *testing.T) {
	a := New(4)
	s := a.Sprintf("frame %d", 7)
	a.Reset()
	a.Sprintf("xxxxxxx")
	if s != "frame 7" {
		t.Fatalf("earlier string changed to %q", s)
	}
	if a.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", a.Len())
	}
}

func TestBuilder(t *testing.T) {
	a := New(0)
	m := a.Mark()
	a.F().S("pos ").F64(1.5, 1).R(',').I(-2).S(" ").Bool(false)
	if got, want := a.StringFrom(m), "pos 1.5,-2 false"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	a.Ensure(4096)
	if a.Cap() < 4096+a.Len() {
		t.Fatalf("Ensure did not grow: cap %d", a.Cap())
	}
}

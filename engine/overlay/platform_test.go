package overlay

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

func TestPlatformHiDpi(t *testing.T) {
	tests := []struct {
		name        string
		mode        HiDpiMode
		locked      float32
		scale       float32
		wantDisplay [2]float32
		wantScale   [2]float32
		wantMouse   [2]float32
	}{
		{"default", HiDpiDefault, 0, 2, [2]float32{800, 600}, [2]float32{2, 2}, [2]float32{100, 50}},
		{"rounded", HiDpiRounded, 0, 1.5, [2]float32{800, 600}, [2]float32{2, 2}, [2]float32{100, 50}},
		{"rounded below one", HiDpiRounded, 0, 0.4, [2]float32{1600, 1200}, [2]float32{1, 1}, [2]float32{200, 100}},
		{"locked", HiDpiLocked, 4, 2, [2]float32{400, 300}, [2]float32{4, 4}, [2]float32{50, 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := newFakeWindow()
			win.fb = [2]int{1600, 1200}
			win.scale = [2]float32{tt.scale, tt.scale}
			events := core.NewEventChannel[core.Event]()
			p := NewPlatform(win, events, tt.mode, tt.locked)
			var io ui.IO
			p.Attach(&io)

			events.Write(core.EventMouseMove{X: 100, Y: 50})
			if n := p.Feed(&io); n != 1 {
				t.Fatalf("Feed() = %d, want 1", n)
			}
			got := [][2]float32{io.DisplaySize, io.FramebufferScale, io.MousePos}
			want := [][2]float32{tt.wantDisplay, tt.wantScale, tt.wantMouse}
			if diff := cmp.Diff(got, want); diff != "" {
				t.Fatalf("Diff (-got +want):\n%s", diff)
			}
		})
	}
}

func TestPlatformScaleChange(t *testing.T) {
	win := newFakeWindow()
	events := core.NewEventChannel[core.Event]()
	p := NewPlatform(win, events, HiDpiDefault, 0)
	var io ui.IO
	p.Attach(&io)

	win.fb = [2]int{1600, 1200}
	win.scale = [2]float32{2, 2}
	events.Write(core.EventScaleChanged{X: 2, Y: 2})
	p.Feed(&io)
	if x, y := p.Scale(); x != 2 || y != 2 {
		t.Fatalf("Scale() = %v, %v", x, y)
	}
	if io.DisplaySize != [2]float32{800, 600} {
		t.Fatalf("DisplaySize = %v", io.DisplaySize)
	}
}

func TestPlatformInput(t *testing.T) {
	win := newFakeWindow()
	events := core.NewEventChannel[core.Event]()
	p := NewPlatform(win, events, HiDpiDefault, 0)
	var io ui.IO
	p.Attach(&io)

	events.WriteAll([]core.Event{
		core.EventKey{Key: core.KeyLeftShift, Down: true},
		core.EventKey{Key: core.KeyA, Down: true},
		core.EventChar{Rune: 'A'},
		core.EventMouseButton{Button: core.MouseRight, Down: true},
		core.EventScroll{Yoff: -1},
	})
	p.Feed(&io)
	if !io.KeyShift || !io.IsKeyDown(ui.KeyShift) {
		t.Error("shift not held")
	}
	if diff := cmp.Diff(io.InputChars, []rune{'A'}); diff != "" {
		t.Errorf("Diff (-got +want):\n%s", diff)
	}
	if !io.MouseDown[core.MouseRight] || io.MouseWheel[1] != -1 {
		t.Errorf("MouseDown = %v, MouseWheel = %v", io.MouseDown, io.MouseWheel)
	}

	events.Write(core.EventFocus{Focused: false})
	p.Feed(&io)
	if io.KeyShift || io.MouseDown[core.MouseRight] {
		t.Error("focus loss kept input held")
	}

	p.Detach()
	events.Write(core.EventChar{Rune: 'b'})
	if n := p.Feed(&io); n != 0 {
		t.Fatalf("Feed() after Detach = %d", n)
	}
}

package tty

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

func openSim(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	term, err := Open(s, core.Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term, s
}

// collect polls until n input events arrived. Resize events are skipped.
func collect(t *testing.T, term *Terminal, n int) []core.Event {
	t.Helper()
	var got []core.Event
	term.SetEventCallback(func(ev core.Event) {
		if _, ok := ev.(core.EventResize); ok {
			return
		}
		got = append(got, ev)
	})
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n && time.Now().Before(deadline) {
		term.PollEvents()
		time.Sleep(time.Millisecond)
	}
	return got
}

func TestKeys(t *testing.T) {
	term, s := openSim(t)
	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)

	got := collect(t, term, 7)
	want := []core.Event{
		core.EventKey{Key: core.KeyA, Down: true},
		core.EventChar{Rune: 'a'},
		core.EventKey{Key: core.KeyA},
		core.EventKey{Key: core.KeyEnter, Down: true},
		core.EventKey{Key: core.KeyEnter},
		core.EventKey{Key: core.KeyS, Down: true, Mods: core.ModCtrl},
		core.EventKey{Key: core.KeyS, Mods: core.ModCtrl},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("events: Diff (-got +want)\n%s", diff)
	}
	if term.ShouldClose() {
		t.Error("ShouldClose without Ctrl-C")
	}
}

func TestCtrlCRequestsClose(t *testing.T) {
	term, s := openSim(t)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	got := collect(t, term, 3)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if _, ok := got[2].(core.EventCloseRequested); !ok {
		t.Errorf("last event = %#v, want EventCloseRequested", got[2])
	}
	if !term.ShouldClose() {
		t.Error("ShouldClose = false after Ctrl-C")
	}
}

func TestMouse(t *testing.T) {
	term, s := openSim(t)
	s.InjectMouse(3, 2, tcell.ButtonPrimary, tcell.ModNone)
	s.InjectMouse(3, 2, tcell.ButtonNone, tcell.ModNone)
	s.InjectMouse(4, 2, tcell.WheelUp, tcell.ModNone)

	got := collect(t, term, 5)
	want := []core.Event{
		core.EventMouseMove{X: 3*CellW + CellW/2, Y: 2*CellH + CellH/2},
		core.EventMouseButton{Button: core.MouseLeft, Down: true},
		core.EventMouseButton{Button: core.MouseLeft},
		core.EventMouseMove{X: 4*CellW + CellW/2, Y: 2*CellH + CellH/2},
		core.EventScroll{Yoff: 1},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("events: Diff (-got +want)\n%s", diff)
	}
}

func TestResizeInPixels(t *testing.T) {
	term, _ := openSim(t)
	var got []core.Event
	term.SetEventCallback(func(ev core.Event) { got = append(got, ev) })
	term.translate(tcell.NewEventResize(20, 5))

	want := []core.Event{core.EventResize{W: 20 * CellW, H: 5 * CellH}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("events: Diff (-got +want)\n%s", diff)
	}
	w, h := term.FramebufferSize()
	if w != 20*CellW || h != 5*CellH {
		t.Errorf("FramebufferSize = %dx%d, want %dx%d", w, h, 20*CellW, 5*CellH)
	}
}

func TestCellMetrics(t *testing.T) {
	w, h := CellMetrics{}.Measure("ab世", 30)
	if w != 4*CellW || h != CellH {
		t.Errorf("Measure = %v,%v", w, h)
	}
}

func TestSinkDraws(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(20, 5)

	data := &ui.DrawData{Cmds: []ui.DrawCmd{
		{Kind: ui.DrawRect, X: 8, Y: 16, W: 48, H: 32, Color: colors.Blue},
		{Kind: ui.DrawText, X: 16, Y: 16, W: 16, H: CellH, Color: colors.Yellow, Text: "OK", Texture: ui.FontTextureID},
		{Kind: ui.DrawImage, X: 120, Y: 0, W: 16, H: 16, Color: colors.White, Texture: 1},
	}}
	if err := NewSink(s).Submit(context.Background(), data, nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	type cell struct {
		R  rune
		Bg tcell.Color
		Fg tcell.Color
	}
	at := func(x, y int) cell {
		r, _, st, _ := s.GetContent(x, y)
		fg, bg, _ := st.Decompose()
		return cell{r, bg, fg}
	}
	blue, yellow := toTcell(colors.Blue), toTcell(colors.Yellow)
	if got := at(2, 1); got.R != 'O' || got.Fg != yellow || got.Bg != blue {
		t.Errorf("cell(2,1) = %+v", got)
	}
	if got := at(3, 1); got.R != 'K' {
		t.Errorf("cell(3,1) = %+v", got)
	}
	if got := at(6, 2); got.R != ' ' || got.Bg != blue {
		t.Errorf("cell(6,2) = %+v, want blue blank", got)
	}
	if got := at(7, 2); got.Bg == blue {
		t.Errorf("cell(7,2) filled outside the rect")
	}
	if got := at(15, 0); got.R != ImageRune {
		t.Errorf("cell(15,0) = %+v, want image", got)
	}
}

func TestSinkClipsOffscreen(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(4, 2)
	data := &ui.DrawData{Cmds: []ui.DrawCmd{
		{Kind: ui.DrawRect, X: -100, Y: -100, W: 1000, H: 1000, Color: colors.Red},
		{Kind: ui.DrawText, X: 16, Y: 0, W: 80, H: CellH, Color: colors.White, Text: "overflow"},
	}}
	if err := NewSink(s).Submit(context.Background(), data, nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r, _, _, _ := s.GetContent(3, 0); r != 'v' {
		t.Errorf("cell(3,0) = %q, want 'v'", r)
	}
}

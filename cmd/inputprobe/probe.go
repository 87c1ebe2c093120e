package main

import (
	"context"
	"fmt"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/scene"
	"github.com/hubastard/grove/engine/ui"
)

type probeAction int

const (
	ProbeMark probeAction = iota
	ProbeClear
	ProbeQuit
)

func (a probeAction) String() string {
	switch a {
	case ProbeMark:
		return "Mark"
	case ProbeClear:
		return "Clear"
	case ProbeQuit:
		return "Quit"
	default:
		return fmt.Sprintf("probeAction(%d)", int(a))
	}
}

func probeBindings() *input.Bindings[probeAction] {
	return input.NewBindings[probeAction]().
		Bind(ProbeMark, input.KeyCombo(core.KeySpace, 0)).
		Bind(ProbeClear, input.KeyCombo(core.KeyL, core.ModCtrl)).
		Bind(ProbeQuit, input.KeyCombo(core.KeyQ, 0), input.KeyCombo(core.KeyEscape, 0))
}

// probeClassify gates the probe's actions on the keyboard claim, so typing
// into a focused field never marks, clears or quits.
func probeClassify(ev input.Event[probeAction]) overlay.Class {
	switch ev.Kind {
	case input.KindActionPressed, input.KindActionReleased:
		return overlay.ClassKeyboard
	}
	return overlay.DefaultClassify(ev)
}

// eventLog keeps the newest lines of a bounded history.
type eventLog struct {
	lines []string
	next  int
	full  bool
	total uint64
}

func newEventLog(n int) *eventLog {
	if n < 1 {
		n = 1
	}
	return &eventLog{lines: make([]string, n)}
}

func (l *eventLog) Add(line string) {
	l.lines[l.next] = line
	l.next = (l.next + 1) % len(l.lines)
	if l.next == 0 {
		l.full = true
	}
	l.total++
}

// Lines returns the history oldest first.
func (l *eventLog) Lines() []string {
	if !l.full {
		return l.lines[:l.next]
	}
	out := make([]string, 0, len(l.lines))
	out = append(out, l.lines[l.next:]...)
	return append(out, l.lines[:l.next]...)
}

func (l *eventLog) Reset() {
	l.next, l.full = 0, false
	clear(l.lines)
}

// scheme follows the forwarded events of one binding scheme.
type scheme[A comparable] struct {
	name   string
	events *core.EventChannel[overlay.FilteredEvent[A]]
	reader core.ReaderID
	stats  *overlay.Classifier[A]
	log    *eventLog
}

func attachScheme[A comparable](w *core.World, name string, history int) (*scheme[A], error) {
	ch, err := core.Require[*core.EventChannel[overlay.FilteredEvent[A]]](w)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: %w", name, err)
	}
	s := &scheme[A]{name: name, events: ch, reader: ch.Register(), log: newEventLog(history)}
	s.stats, _ = core.Fetch[*overlay.Classifier[A]](w)
	return s, nil
}

func (s *scheme[A]) read(f func(input.Event[A])) {
	for _, fe := range s.events.Read(s.reader) {
		if fe.Event.Kind == input.KindCursorMoved {
			continue
		}
		s.log.Add(fe.Event.String())
		if f != nil {
			f(fe.Event)
		}
	}
}

func (s *scheme[A]) close() { s.events.Unregister(s.reader) }

func (s *scheme[A]) draw(f *ui.Frame, x float32) {
	f.BeginView(ui.Props{
		Name:     s.name,
		Axis:     ui.Vertical,
		BoundsX:  x,
		BoundsY:  0,
		Bg:       colors.Black,
		NoInputs: true,
	})
	defer f.EndView()

	f.LabelColored(s.name, colors.Yellow)
	if s.stats != nil {
		fwd, capt := s.stats.Stats()
		f.Labelf("forwarded %d  captured %d", fwd, capt)
	}
	for _, line := range s.log.Lines() {
		f.Label(line)
	}
}

// probeLayer shows the controls that claim input next to what reached the
// application.
type probeLayer struct {
	history int
	camera  *scheme[scene.CamAction]
	probe   *scheme[probeAction]

	text      string
	holdMouse bool
	holdKeys  bool
	marks     int
}

func newProbeLayer(history int) *probeLayer { return &probeLayer{history: history} }

func (l *probeLayer) OnAttach(e *core.Engine) {
	var err error
	if l.camera, err = attachScheme[scene.CamAction](e.World, "camera", l.history); err != nil {
		e.Log.Errorf("probe: %v", err)
	}
	if l.probe, err = attachScheme[probeAction](e.World, "probe", l.history); err != nil {
		e.Log.Errorf("probe: %v", err)
	}
}

func (l *probeLayer) OnDetach(e *core.Engine) {
	if l.camera != nil {
		l.camera.close()
	}
	if l.probe != nil {
		l.probe.close()
	}
}

func (l *probeLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *probeLayer) OnFrame(ctx context.Context, e *core.Engine) {
	if l.camera != nil {
		l.camera.read(nil)
	}
	if l.probe != nil {
		l.probe.read(func(ev input.Event[probeAction]) { l.act(e, ev) })
	}

	overlay.With(ctx, func(f *ui.Frame) {
		f.BeginView(ui.Props{
			Name:    "Controls",
			Axis:    ui.Vertical,
			Gap:     0,
			Padding: ui.Insets(8, 0, 8, 0),
			Bg:      colors.DarkGray,
			BoundsX: 0,
			BoundsY: 0,
		})
		f.LabelColored("inputprobe", colors.Yellow)
		f.Label("space: mark  ctrl+l: clear  q: quit")
		f.InputText("Type", &l.text)
		f.Checkbox("Hold mouse", &l.holdMouse)
		f.Checkbox("Hold keyboard", &l.holdKeys)
		if f.Button("Clear") {
			l.clear()
		}
		f.Labelf("marks %d", l.marks)
		f.EndView()

		if l.holdMouse {
			f.SetNextFrameWantCaptureMouse(true)
		}
		if l.holdKeys {
			f.SetNextFrameWantCaptureKeyboard(true)
		}

		w, _ := e.Window.FramebufferSize()
		col := float32(w) / 3
		if l.camera != nil {
			l.camera.draw(f, col)
		}
		if l.probe != nil {
			l.probe.draw(f, 2*col)
		}
	})
}

func (l *probeLayer) act(e *core.Engine, ev input.Event[probeAction]) {
	if ev.Kind != input.KindActionPressed {
		return
	}
	switch ev.Action {
	case ProbeMark:
		l.marks++
	case ProbeClear:
		l.clear()
	case ProbeQuit:
		e.Window.RequestClose()
	}
}

func (l *probeLayer) clear() {
	l.marks = 0
	if l.camera != nil {
		l.camera.log.Reset()
	}
	if l.probe != nil {
		l.probe.log.Reset()
	}
}

func (l *probeLayer) OnRender(e *core.Engine, alpha float64) {}

func (l *probeLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }

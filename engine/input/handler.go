package input

import (
	"context"
	"fmt"
	"sync"

	"github.com/hubastard/grove/engine/core"
)

// Handler translates platform events into Event[A] for one binding scheme.
// It runs in core.StageInput.
type Handler[A comparable] struct {
	name     string
	bindings *Bindings[A]
	platform *core.EventChannel[core.Event]
	reader   core.ReaderID
	out      *core.EventChannel[Event[A]]

	mu      sync.Mutex
	state   *State
	scratch []Event[A]
}

// Install validates bindings, inserts the scheme's event channel and
// registers a Handler in StageInput. It fails if the scheme is already installed.
func Install[A comparable](w *core.World, d *core.Dispatcher, name string, bindings *Bindings[A]) (*Handler[A], error) {
	if bindings == nil {
		bindings = NewBindings[A]()
	}
	if err := bindings.Validate(); err != nil {
		return nil, fmt.Errorf("input %s: %w", name, err)
	}
	platform, err := core.Require[*core.EventChannel[core.Event]](w)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", name, err)
	}
	out := core.NewEventChannel[Event[A]]()
	if !core.InsertNew(w, out) {
		return nil, fmt.Errorf("input %s: scheme %T already installed", name, *new(A))
	}
	h := &Handler[A]{
		name:     name,
		bindings: bindings,
		platform: platform,
		reader:   platform.Register(),
		out:      out,
		state:    NewState(),
	}
	core.Insert(w, h)
	d.AddSystem(core.StageInput, h)
	return h, nil
}

func (h *Handler[A]) Name() string { return "input." + h.name }

// Events returns the channel the handler writes to.
func (h *Handler[A]) Events() *core.EventChannel[Event[A]] { return h.out }

// State runs f with the raw input state.
func (h *Handler[A]) State(f func(*State)) {
	h.mu.Lock()
	f(h.state)
	h.mu.Unlock()
}

func (h *Handler[A]) Run(_ context.Context, _ *core.World) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.scratch = h.scratch[:0]
	for _, ev := range h.platform.Read(h.reader) {
		h.translate(ev)
		h.state.Handle(ev)
	}
	h.out.WriteAll(h.scratch)
	return nil
}

func (h *Handler[A]) emit(ev Event[A]) { h.scratch = append(h.scratch, ev) }

func (h *Handler[A]) translate(ev core.Event) {
	switch e := ev.(type) {
	case core.EventKey:
		if e.Repeat {
			return
		}
		kind, akind := KindKeyReleased, KindActionReleased
		if e.Down {
			kind, akind = KindKeyPressed, KindActionPressed
		}
		h.emit(Event[A]{Kind: kind, Key: e.Key, Mods: e.Mods})
		for _, a := range h.bindings.match(KeyCombo(e.Key, e.Mods)) {
			h.emit(Event[A]{Kind: akind, Action: a, Mods: e.Mods})
		}
	case core.EventChar:
		h.emit(Event[A]{Kind: KindKeyTyped, Rune: e.Rune})
	case core.EventMouseButton:
		kind, akind := KindMouseButtonReleased, KindActionReleased
		if e.Down {
			kind, akind = KindMouseButtonPressed, KindActionPressed
		}
		h.emit(Event[A]{Kind: kind, Button: e.Button, Mods: e.Mods})
		c := ButtonCombo(e.Button)
		c.Mods = e.Mods
		for _, a := range h.bindings.match(c) {
			h.emit(Event[A]{Kind: akind, Action: a, Mods: e.Mods})
		}
	case core.EventMouseMove:
		if h.state.hasMouse {
			dx, dy := e.X-h.state.mouseX, e.Y-h.state.mouseY
			if dx != 0 || dy != 0 {
				h.emit(Event[A]{Kind: KindMouseMoved, X: dx, Y: dy})
			}
		}
		h.emit(Event[A]{Kind: KindCursorMoved, X: e.X, Y: e.Y})
	case core.EventScroll:
		h.emit(Event[A]{Kind: KindMouseWheelMoved, Wheel: [2]float64{e.Xoff, e.Yoff}})
	case core.EventFocus:
		h.emit(Event[A]{Kind: KindWindowFocus, Focus: e.Focused})
	}
}

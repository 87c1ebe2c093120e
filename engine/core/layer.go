package core

import (
	"context"
	"time"
)

type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // return true if handled; propagation stops
}

// FrameLayer is implemented by layers that build per-frame state, such as UI,
// exactly once per frame. OnFrame runs in StageLogic; ctx carries the frame.
type FrameLayer interface {
	OnFrame(ctx context.Context, e *Engine)
}

type LayerStack struct{ list []Layer }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }
func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if stop := f(ls.list[i]); stop {
			break
		}
	}
}

// layerTicker drives the layers at a fixed rate from StageLogic.
type layerTicker struct {
	e       *Engine
	tick    time.Duration
	accum   time.Duration
	prev    time.Time
	maxStep int // prevent spiral of death
	alpha   float64
}

func newLayerTicker(e *Engine, hz int) *layerTicker {
	if hz <= 0 {
		hz = 60
	}
	return &layerTicker{e: e, tick: time.Second / time.Duration(hz), maxStep: 10}
}

func (t *layerTicker) Name() string { return "layers" }

func (t *layerTicker) Run(ctx context.Context, _ *World) error {
	now := time.Now()
	if t.prev.IsZero() {
		t.prev = now
	}
	t.accum += now.Sub(t.prev)
	t.prev = now

	dt := float64(t.tick) / float64(time.Second)
	steps := 0
	for t.accum >= t.tick && steps < t.maxStep {
		t.e.Layers.ForEach(func(l Layer) { l.OnUpdate(t.e, dt) })
		t.accum -= t.tick
		steps++
	}
	if steps == t.maxStep {
		t.accum = 0
	}
	t.alpha = float64(t.accum) / float64(t.tick)

	t.e.Layers.ForEach(func(l Layer) {
		if fl, ok := l.(FrameLayer); ok {
			fl.OnFrame(ctx, t.e)
		}
	})
	return nil
}

// layerPass renders the layer stack bottom-up as opaque content.
type layerPass struct {
	e      *Engine
	ticker *layerTicker
}

func (p layerPass) Name() string { return "layers" }

func (p layerPass) Draw(context.Context, *World) error {
	p.e.Layers.ForEach(func(l Layer) { l.OnRender(p.e, p.ticker.alpha) })
	return nil
}

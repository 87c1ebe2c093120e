package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/agext/levenshtein"
	"github.com/hubastard/grove/engine/profiler"
)

// ErrUnknownTarget is returned when a plugin extends a target the host never declared.
var ErrUnknownTarget = errors.New("unknown render target")

// Target names a render output (the window surface, an offscreen buffer).
type Target string

const TargetMain Target = "main"

// RenderOrder determines where a pass lands within its target. Lower values render first.
type RenderOrder int

const (
	OrderBackground RenderOrder = iota
	OrderOpaque
	OrderTransparent
	OrderPostEffects
	OrderDisplayPostEffects
	OrderOverlay
)

// Pass is one draw step of a render target.
type Pass interface {
	Name() string
	Draw(ctx context.Context, w *World) error
}

type funcPass struct {
	name string
	fn   func(ctx context.Context, w *World) error
}

func (p funcPass) Name() string { return p.name }

func (p funcPass) Draw(ctx context.Context, w *World) error {
	if p.fn == nil {
		return nil
	}
	return p.fn(ctx, w)
}

// NewPass adapts a function into a Pass. A nil fn draws nothing.
func NewPass(name string, fn func(ctx context.Context, w *World) error) Pass {
	return funcPass{name: name, fn: fn}
}

type passEntry struct {
	pass  Pass
	order RenderOrder
	index int // registration order for stable sort
}

// TargetPlan is the ordered list of passes drawn into one target.
type TargetPlan struct {
	target   Target
	passes   []passEntry
	regCount int
}

// Add inserts p at order. Passes with equal order keep registration order.
func (tp *TargetPlan) Add(order RenderOrder, p Pass) {
	entry := passEntry{pass: p, order: order, index: tp.regCount}
	tp.regCount++

	pos := len(tp.passes)
	for i, e := range tp.passes {
		if order < e.order || (order == e.order && entry.index < e.index) {
			pos = i
			break
		}
	}
	tp.passes = append(tp.passes, passEntry{})
	copy(tp.passes[pos+1:], tp.passes[pos:])
	tp.passes[pos] = entry
}

// Passes returns the pass names in draw order.
func (tp *TargetPlan) Passes() []string {
	out := make([]string, len(tp.passes))
	for i, e := range tp.passes {
		out[i] = e.pass.Name()
	}
	return out
}

// RenderPlan holds the passes of every target. Targets draw in declaration order.
type RenderPlan struct {
	targets map[Target]*TargetPlan
	order   []Target
}

func NewRenderPlan(targets ...Target) *RenderPlan {
	p := &RenderPlan{targets: make(map[Target]*TargetPlan, len(targets))}
	for _, t := range targets {
		if _, ok := p.targets[t]; ok {
			continue
		}
		p.targets[t] = &TargetPlan{target: t}
		p.order = append(p.order, t)
	}
	return p
}

// Target returns the plan of t, or nil.
func (p *RenderPlan) Target(t Target) *TargetPlan { return p.targets[t] }

// ExtendTarget lets f add passes to target t.
func (p *RenderPlan) ExtendTarget(t Target, f func(tp *TargetPlan) error) error {
	tp, ok := p.targets[t]
	if !ok {
		if s, ok := p.suggest(string(t)); ok {
			return fmt.Errorf("%w %q, did you mean %q?", ErrUnknownTarget, t, s)
		}
		return fmt.Errorf("%w %q", ErrUnknownTarget, t)
	}
	return f(tp)
}

func (p *RenderPlan) suggest(want string) (string, bool) {
	for _, t := range p.order {
		if levenshtein.Distance(want, string(t), nil) < 3 {
			return string(t), true
		}
	}
	return "", false
}

// Execute draws every target's passes in order.
func (p *RenderPlan) Execute(ctx context.Context, w *World) error {
	for _, t := range p.order {
		for _, e := range p.targets[t].passes {
			end := profiler.Start("pass." + e.pass.Name())
			err := e.pass.Draw(ctx, w)
			end()
			if err != nil {
				return fmt.Errorf("target %s pass %s: %w", t, e.pass.Name(), err)
			}
		}
	}
	return nil
}

// RenderPlugin extends the host pipeline and its render plan.
type RenderPlugin interface {
	// OnBuild is called once before the first frame to register systems.
	OnBuild(w *World, d *Dispatcher) error
	// ShouldRebuild reports whether the plan must be rebuilt this frame.
	ShouldRebuild(w *World) bool
	// OnPlan adds the plugin's passes to a freshly built plan.
	OnPlan(plan *RenderPlan, w *World) error
}

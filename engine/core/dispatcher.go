package core

import (
	"context"
	"fmt"

	"github.com/hubastard/grove/engine/profiler"
	"golang.org/x/sync/errgroup"
)

// Stage is a step of the per-frame pipeline. Stages run strictly in order.
type Stage int

const (
	// StageInput translates platform events into application input events. Host-owned.
	StageInput Stage = iota
	// StageBegin is the earliest stage open to plugins. Its systems run
	// concurrently and must not depend on each other.
	StageBegin
	// StageLogic runs application systems sequentially on the frame driver.
	StageLogic
	// StageEnd runs after the build phase has been finalized.
	StageEnd
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageBegin:
		return "begin"
	case StageLogic:
		return "logic"
	case StageEnd:
		return "end"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// concurrent reports whether systems of the stage may run in parallel.
func (s Stage) concurrent() bool { return s == StageBegin }

// System is a unit of per-frame work.
type System interface {
	Name() string
	Run(ctx context.Context, w *World) error
}

type funcSystem struct {
	name string
	fn   func(ctx context.Context, w *World) error
}

func (s funcSystem) Name() string                            { return s.name }
func (s funcSystem) Run(ctx context.Context, w *World) error { return s.fn(ctx, w) }

// NewSystem adapts a function into a System.
func NewSystem(name string, fn func(ctx context.Context, w *World) error) System {
	return funcSystem{name: name, fn: fn}
}

// SystemBuilder constructs a system once the world is available. Errors
// abort Dispatcher.Build.
type SystemBuilder func(w *World) (System, error)

// Scope wraps a whole stage. It must call next exactly once, with the
// context the stage's systems should observe.
type Scope func(ctx context.Context, w *World, next func(ctx context.Context) error) error

type pending struct {
	stage   Stage
	builder SystemBuilder
}

// Dispatcher schedules systems into stages and runs one frame at a time.
type Dispatcher struct {
	pending []pending
	systems [stageCount][]System
	scopes  [stageCount][]Scope
	built   bool
	log     *Logger
}

func NewDispatcher(log *Logger) *Dispatcher { return &Dispatcher{log: log} }

// AddSystem schedules s in stage. Systems of a sequential stage run in registration order.
func (d *Dispatcher) AddSystem(stage Stage, s System) {
	d.AddBuilder(stage, func(*World) (System, error) { return s, nil })
}

// AddBuilder schedules a system constructed at Build time.
func (d *Dispatcher) AddBuilder(stage Stage, b SystemBuilder) {
	d.pending = append(d.pending, pending{stage: stage, builder: b})
	d.built = false
}

// AddScope wraps stage with sc. The first scope added is the outermost.
func (d *Dispatcher) AddScope(stage Stage, sc Scope) {
	d.scopes[stage] = append(d.scopes[stage], sc)
}

// Build runs every pending builder in registration order. The first error
// is returned and later builders are not run.
func (d *Dispatcher) Build(w *World) error {
	for len(d.pending) > 0 {
		p := d.pending[0]
		d.pending = d.pending[1:]
		s, err := p.builder(w)
		if err != nil {
			return fmt.Errorf("build %s system: %w", p.stage, err)
		}
		if s == nil {
			continue
		}
		d.systems[p.stage] = append(d.systems[p.stage], s)
		d.log.Verbosef("dispatcher: %s += %s", p.stage, s.Name())
	}
	d.built = true
	return nil
}

// Systems returns the names of the systems in stage, in run order.
func (d *Dispatcher) Systems(stage Stage) []string {
	out := make([]string, len(d.systems[stage]))
	for i, s := range d.systems[stage] {
		out[i] = s.Name()
	}
	return out
}

// RunFrame runs every stage in order. A failing stage stops the frame.
func (d *Dispatcher) RunFrame(ctx context.Context, w *World) error {
	if !d.built {
		return fmt.Errorf("dispatcher: RunFrame before Build")
	}
	for st := Stage(0); st < stageCount; st++ {
		if err := d.runStage(ctx, w, st); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) runStage(ctx context.Context, w *World, st Stage) error {
	end := profiler.Start("stage." + st.String())
	defer end()

	run := func(ctx context.Context) error { return d.runSystems(ctx, w, st) }
	for i := len(d.scopes[st]) - 1; i >= 0; i-- {
		sc, inner := d.scopes[st][i], run
		run = func(ctx context.Context) error { return sc(ctx, w, inner) }
	}
	return run(ctx)
}

func (d *Dispatcher) runSystems(ctx context.Context, w *World, st Stage) error {
	systems := d.systems[st]
	if !st.concurrent() || len(systems) < 2 {
		for _, s := range systems {
			if err := s.Run(ctx, w); err != nil {
				return fmt.Errorf("%s/%s: %w", st, s.Name(), err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range systems {
		g.Go(func() error {
			if err := s.Run(gctx, w); err != nil {
				return fmt.Errorf("%s/%s: %w", st, s.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

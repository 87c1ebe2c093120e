package overlay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/ui"
)

// ErrDuplicateBinding is returned when two bindings share a scheme or name.
var ErrDuplicateBinding = errors.New("overlay: duplicate binding")

// State is the plugin lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateFailed
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Binding installs a classifier for one input binding scheme.
type Binding interface {
	Name() string
	install(p *Plugin, w *core.World, d *core.Dispatcher) (closer func(), err error)
}

type binding[A comparable] struct {
	name     string
	classify ClassifyFunc[A]
}

type BindOption[A comparable] func(*binding[A])

// WithClassify replaces DefaultClassify for one binding.
func WithClassify[A comparable](f ClassifyFunc[A]) BindOption[A] {
	return func(b *binding[A]) { b.classify = f }
}

// Bind classifies the input events of scheme A. The scheme must be
// installed with input.Install before the plugin builds; its filtered
// events are published as *core.EventChannel[FilteredEvent[A]].
func Bind[A comparable](name string, opts ...BindOption[A]) Binding {
	b := &binding[A]{name: name}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *binding[A]) Name() string { return b.name }

func (b *binding[A]) install(p *Plugin, w *core.World, d *core.Dispatcher) (func(), error) {
	in, err := core.Require[*core.EventChannel[input.Event[A]]](w)
	if err != nil {
		return nil, fmt.Errorf("binding %s: input scheme not installed: %w", b.name, err)
	}
	out := core.NewEventChannel[FilteredEvent[A]]()
	if !core.InsertNew(w, out) {
		return nil, fmt.Errorf("%w: scheme %T bound twice", ErrDuplicateBinding, *new(A))
	}
	c := NewClassifier(b.name, p.shared, in, out, b.classify)
	core.Insert(w, c)
	d.AddSystem(core.StageBegin, c)
	return c.Close, nil
}

// Plugin is the host-facing adapter of the overlay. It implements
// core.RenderPlugin. Code running in core.StageLogic reaches the UI through
// With; the shared state stays locked for the whole build phase.
type Plugin struct {
	cfg      Config
	bindings []Binding

	mu       sync.Mutex
	state    State
	pending  []core.Texture
	shared   *SharedState
	slot     FrameSlot
	platform *Platform
	closers  []func()
	log      *core.Logger
}

// New returns an uninitialized plugin. The configuration is validated when
// the plugin builds.
func New(cfg Config, bindings ...Binding) *Plugin {
	return &Plugin{cfg: cfg.Normalize(), bindings: bindings}
}

func (p *Plugin) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Config returns the normalized configuration.
func (p *Plugin) Config() Config { return p.cfg }

// Shared returns the UI state, or nil before the plugin builds.
func (p *Plugin) Shared() *SharedState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shared
}

func (p *Plugin) Slot() *FrameSlot { return &p.slot }

// AddTexture registers t and returns its id. Textures added before the
// plugin builds get ids in the order they were added.
func (p *Plugin) AddTexture(t core.Texture) ui.TextureID {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shared != nil {
		return p.shared.RegisterTexture(t)
	}
	p.pending = append(p.pending, t)
	return ui.TextureID(len(p.pending))
}

func (p *Plugin) OnBuild(w *core.World, d *core.Dispatcher) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateUninitialized {
		return fmt.Errorf("overlay: build in state %s", p.state)
	}
	if err := p.setup(w, d); err != nil {
		p.state = StateFailed
		p.close()
		return fmt.Errorf("overlay: %w", err)
	}
	p.state = StateActive
	p.log.Verbosef("overlay: active on target %q with %d binding(s)", p.cfg.Target, len(p.bindings))
	return nil
}

func (p *Plugin) setup(w *core.World, d *core.Dispatcher) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	mode, _ := p.cfg.hiDpiMode()
	win, err := core.Require[core.Window](w)
	if err != nil {
		return err
	}
	events, err := core.Require[*core.EventChannel[core.Event]](w)
	if err != nil {
		return err
	}
	if _, err := core.Require[Sink](w); err != nil {
		return err
	}
	p.log, _ = core.Fetch[*core.Logger](w)
	fonts, _ := core.Fetch[ui.FontMetrics](w)

	ctx := ui.NewContext(ui.Options{
		Fonts:    fonts,
		FontSize: float32(p.cfg.FontSize),
		Flags:    p.cfg.flags(),
	})
	p.shared = NewSharedState(ctx)
	p.platform = NewPlatform(win, events, mode, float32(p.cfg.Scale))
	p.platform.Attach(ctx.IO())
	p.shared.platform = p.platform
	p.closers = append(p.closers, p.platform.Detach)
	for _, t := range p.pending {
		p.shared.RegisterTexture(t)
	}
	p.pending = nil

	names := make(map[string]bool, len(p.bindings))
	for _, b := range p.bindings {
		if names[b.Name()] {
			return fmt.Errorf("%w: name %q", ErrDuplicateBinding, b.Name())
		}
		names[b.Name()] = true
		closer, err := b.install(p, w, d)
		if err != nil {
			return err
		}
		p.closers = append(p.closers, closer)
	}

	core.Insert(w, p.shared)
	core.Insert(w, &p.slot)
	d.AddScope(core.StageBegin, p.inputScope)
	d.AddScope(core.StageLogic, p.frameScope)
	return nil
}

// inputScope feeds platform input to the UI once per frame, before the
// classifiers of the stage run.
func (p *Plugin) inputScope(ctx context.Context, _ *core.World, next func(context.Context) error) error {
	if p.State() == StateActive {
		p.shared.sync()
	}
	return next(ctx)
}

// frameScope opens a UI frame around the logic stage and finalizes it on
// every exit path. The context stays locked until the frame is rendered.
func (p *Plugin) frameScope(ctx context.Context, _ *core.World, next func(context.Context) error) error {
	if p.State() != StateActive {
		return next(ctx)
	}
	return p.shared.Do(func(c *ui.Context) error {
		f := c.NewFrame()
		fctx, release, err := p.slot.Begin(ctx, f)
		defer func() {
			c.Render()
			release()
		}()
		if err != nil {
			return err
		}
		return next(fctx)
	})
}

func (p *Plugin) ShouldRebuild(*core.World) bool { return false }

func (p *Plugin) OnPlan(plan *core.RenderPlan, w *core.World) error {
	if st := p.State(); st != StateActive {
		return fmt.Errorf("overlay: plan in state %s", st)
	}
	sink, err := core.Require[Sink](w)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	pass := NewDrawPass(p.shared, sink, p.log)
	err = plan.ExtendTarget(core.Target(p.cfg.Target), func(tp *core.TargetPlan) error {
		tp.Add(core.OrderOverlay, pass)
		return nil
	})
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}

// Close shuts the slot and releases every reader. The plugin stays inert.
func (p *Plugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateShutdown {
		return nil
	}
	p.state = StateShutdown
	p.close()
	return nil
}

func (p *Plugin) close() {
	p.slot.Shutdown()
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
	p.closers = nil
}

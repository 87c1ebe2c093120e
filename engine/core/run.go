package core

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"
)

// NewEngine wires an engine around an already created window and renderer.
func NewEngine(win Window, rend Renderer, cfg Config, log *Logger) *Engine {
	e := &Engine{
		Window:     win,
		Renderer:   rend,
		World:      NewWorld(),
		Dispatcher: NewDispatcher(log),
		Log:        log,
		targets:    cfg.TargetList(),
		start:      time.Now(),
	}
	Insert(e.World, win)
	Insert(e.World, NewEventChannel[Event]())
	Insert(e.World, log)
	e.ticker = newLayerTicker(e, cfg.TickHz)
	return e
}

// Setup attaches layers, builds every plugin and system and plans the
// first frame. app may be nil.
func (e *Engine) Setup(app App) error {
	events, err := Require[*EventChannel[Event]](e.World)
	if err != nil {
		return err
	}
	e.Window.SetEventCallback(func(ev Event) {
		events.Write(ev)
		switch ev.(type) {
		case EventResize:
			fw, fh := e.Window.FramebufferSize()
			if fw >= 1 && fh >= 1 {
				e.Renderer.Resize(fw, fh)
			}
		case EventCloseRequested, EventScaleChanged, EventFocus:
		default:
			return // input events reach the application through input channels
		}
		if app != nil {
			app.OnEvent(e, ev)
		}
		e.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, ev) })
	})

	for _, p := range e.plugins {
		if err := p.OnBuild(e.World, e.Dispatcher); err != nil {
			return fmt.Errorf("plugin build: %w", err)
		}
	}
	e.Layers.ForEach(func(l Layer) { l.OnAttach(e) })
	e.Dispatcher.AddSystem(StageLogic, e.ticker)
	if err := e.Dispatcher.Build(e.World); err != nil {
		return err
	}
	return e.rebuildPlan()
}

func (e *Engine) rebuildPlan() error {
	plan := NewRenderPlan(e.targets...)
	if err := plan.ExtendTarget(e.targets[0], func(tp *TargetPlan) error {
		tp.Add(OrderOpaque, layerPass{e: e, ticker: e.ticker})
		return nil
	}); err != nil {
		return err
	}
	for _, p := range e.plugins {
		if err := p.OnPlan(plan, e.World); err != nil {
			return fmt.Errorf("plugin plan: %w", err)
		}
	}
	e.plan = plan
	e.Log.Verbosef("render plan: %d target(s)", len(e.targets))
	return nil
}

// Frame runs one frame: poll, stages, plan, present.
func (e *Engine) Frame(ctx context.Context, app App, clear [4]float32) error {
	e.Window.PollEvents()

	if err := e.Dispatcher.RunFrame(ctx, e.World); err != nil {
		return err
	}

	for _, p := range e.plugins {
		if p.ShouldRebuild(e.World) {
			if err := e.rebuildPlan(); err != nil {
				return err
			}
			break
		}
	}

	e.Renderer.Clear(clear[0], clear[1], clear[2], clear[3])
	if app != nil {
		app.OnRender(e, e.ticker.alpha)
	}
	if err := e.plan.Execute(ctx, e.World); err != nil {
		return err
	}

	e.Window.SwapBuffers()
	return nil
}

// Run wires the platform window + renderer and executes the main loop until
// the window closes or ctx is done.
func Run(ctx context.Context, app App, cfg Config, log *Logger, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := NewEngine(win, rend, cfg, log)
	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := eng.Setup(app); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	for !win.ShouldClose() && ctx.Err() == nil {
		if err := eng.Frame(ctx, app, cfg.ClearColor); err != nil {
			app.OnShutdown(eng)
			eng.Close()
			return err
		}
	}

	app.OnShutdown(eng)
	eng.Close()
	log.Infof("engine exit after %s", eng.Uptime().Round(time.Millisecond))
	return nil
}

// Close detaches the layers and closes plugins that implement io.Closer.
func (e *Engine) Close() {
	e.Layers.ForEach(func(l Layer) { l.OnDetach(e) })
	for _, p := range e.plugins {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				e.Log.Errorf("plugin close: %v", err)
			}
		}
	}
}

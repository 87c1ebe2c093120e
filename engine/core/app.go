package core

import (
	"time"
)

// App defines the game/application hooks.
type App interface {
	OnStart(e *Engine) error           // called once after window/renderer init, before plugins build
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window     Window
	Renderer   Renderer
	World      *World
	Dispatcher *Dispatcher
	Layers     LayerStack
	Log        *Logger

	plugins []RenderPlugin
	plan    *RenderPlan
	targets []Target
	ticker  *layerTicker
	start   time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// AddPlugin registers a render plugin. Plugins must be added from App.OnStart.
func (e *Engine) AddPlugin(p RenderPlugin) { e.plugins = append(e.plugins, p) }

// Plan returns the current render plan.
func (e *Engine) Plan() *RenderPlan { return e.plan }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	WindowSize() (int, int)
	ContentScale() (float32, float32)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer is the frame-level surface the run loop needs.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
}

// Config for the engine run.
type Config struct {
	Title      string     `hcl:"title,optional"`
	Width      int        `hcl:"width,optional"`
	Height     int        `hcl:"height,optional"`
	VSync      bool       `hcl:"vsync,optional"`
	ClearColor [4]float32 // RGBA
	Targets    []string   `hcl:"targets,optional"` // render targets; "main" when empty
	TickHz     int        `hcl:"tick_hz,optional"` // layer update rate; 60 when zero
}

// TargetList returns the configured render targets, defaulting to TargetMain.
func (c Config) TargetList() []Target {
	if len(c.Targets) == 0 {
		return []Target{TargetMain}
	}
	out := make([]Target, len(c.Targets))
	for i, t := range c.Targets {
		out[i] = Target(t)
	}
	return out
}

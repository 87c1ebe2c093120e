package main

import (
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/platform/tty"
	"github.com/hubastard/grove/engine/scene"
	"github.com/hubastard/grove/engine/ui"
)

type App struct {
	term       *tty.Terminal
	overlayCfg overlay.Config
	history    int
	overlay    *overlay.Plugin
}

func (a *App) OnStart(e *core.Engine) error {
	if _, err := input.Install(e.World, e.Dispatcher, "camera", scene.DefaultCamBindings()); err != nil {
		return err
	}
	if _, err := input.Install(e.World, e.Dispatcher, "probe", probeBindings()); err != nil {
		return err
	}
	core.Insert[ui.FontMetrics](e.World, tty.CellMetrics{})
	core.Insert[overlay.Sink](e.World, a.term.Sink())

	a.overlay = overlay.New(a.overlayCfg,
		overlay.Bind[scene.CamAction]("camera"),
		overlay.Bind[probeAction]("probe", overlay.WithClassify[probeAction](probeClassify)),
	)
	e.AddPlugin(a.overlay)
	e.Layers.Push(newProbeLayer(a.history))
	return nil
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if _, ok := ev.(core.EventCloseRequested); ok {
		e.Window.RequestClose()
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	e.Log.Infof("overlay %s", a.overlay.State())
}

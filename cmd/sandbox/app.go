package main

import (
	"errors"
	"fmt"

	"github.com/hubastard/grove/engine/assets"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
	"github.com/hubastard/grove/engine/gfx/uirender"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/profiler"
	"github.com/hubastard/grove/engine/scene"
	"github.com/hubastard/grove/engine/text"
	"github.com/hubastard/grove/engine/ui"
)

type App struct {
	overlayCfg overlay.Config
	assets     assets.Loader

	r2d     *renderer2d.Renderer2D
	uiR2D   *renderer2d.Renderer2D
	font    *text.Font
	overlay *overlay.Plugin
}

func (a *App) OnStart(e *core.Engine) error {
	profiler.Init(1 << 10) // ~1K scope samples

	dev, ok := e.Renderer.(core.Device)
	if !ok {
		return errors.New("renderer cannot create GPU resources")
	}

	var err error
	if a.r2d, err = renderer2d.NewDefault(dev, 10000); err != nil {
		return err
	}
	if a.uiR2D, err = renderer2d.NewDefault(dev, 4096); err != nil {
		return err
	}
	if a.font, err = a.loadFont(dev); err != nil {
		return err
	}
	player, err := a.assets.Texture(dev, "player.png")
	if err != nil {
		return err
	}

	if _, err := input.Install(e.World, e.Dispatcher, "camera", scene.DefaultCamBindings()); err != nil {
		return err
	}
	core.Insert[ui.FontMetrics](e.World, a.font)
	core.Insert[overlay.Sink](e.World, uirender.New(a.uiR2D, a.font))

	a.overlay = overlay.New(a.overlayCfg, overlay.Bind[scene.CamAction]("camera"))
	e.AddPlugin(a.overlay)

	sprite := renderer2d.FromPixels(player, 0, 0, 32, 32, 64, 32)
	e.Layers.Push(&Layer2D{r2d: a.r2d, player: sprite})
	e.Layers.Push(&LayerDebug{
		r2d:       a.r2d,
		ui:        a.uiR2D,
		dev:       dev,
		playerTex: a.overlay.AddTexture(player),
	})
	return nil
}

// loadFont prefers fonts/ui.ttf from the asset directory and falls back to
// the built-in bitmap font.
func (a *App) loadFont(dev core.Device) (*text.Font, error) {
	data, err := a.assets.Font("ui.ttf")
	if err != nil {
		return text.Basic(dev)
	}
	f, err := text.Load(dev, data, float32(a.overlayCfg.FontSize))
	if err != nil {
		return nil, fmt.Errorf("ui font: %w", err)
	}
	return f, nil
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	if s := a.overlay.Shared(); s != nil {
		n := overlay.WithExclusiveAccess(s, func(c *ui.Context) uint64 { return c.FrameCount() })
		e.Log.Infof("overlay %s after %d frames", a.overlay.State(), n)
	}
	a.font.Close()
}

package main

import (
	"context"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/profiler"
	"github.com/hubastard/grove/engine/scene"
)

// ------- A simple 2D Layer demo -------
type Layer2D struct {
	cam    *scene.OrthoCamera2D
	ctrl   *scene.OrthoController2D
	r2d    *renderer2d.Renderer2D
	player renderer2d.SubTexture2D
	t      float32
	paused bool

	events *core.EventChannel[overlay.FilteredEvent[scene.CamAction]]
	reader core.ReaderID
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	// Camera sized to framebuffer
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.cam.SetZoom(4)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	var ok bool
	if l.events, ok = core.Fetch[*core.EventChannel[overlay.FilteredEvent[scene.CamAction]]](e.World); !ok {
		e.Log.Errorf("2D layer: camera events not bound; controls disabled")
		return
	}
	l.reader = l.events.Register()
}

func (l *Layer2D) OnDetach(e *core.Engine) {
	if l.events != nil {
		l.events.Unregister(l.reader)
	}
}

// OnFrame consumes the camera events the overlay did not capture.
func (l *Layer2D) OnFrame(_ context.Context, e *core.Engine) {
	if l.events == nil {
		return
	}
	for _, fe := range l.events.Read(l.reader) {
		ev := fe.Event
		if l.ctrl.Handle(ev) || ev.Kind != input.KindKeyPressed {
			continue
		}
		switch {
		case ev.Key == core.KeyEscape:
			e.Window.RequestClose()
		case ev.Key == core.KeyP && ev.Mods&core.ModCtrl != 0:
			if path, err := profiler.OpenProfilerGraph(); err == nil {
				e.Log.Infof("speedscope dump: %s", path)
			} else {
				e.Log.Errorf("profiler dump: %v", err)
			}
		}
	}
}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(float32(dt))
	if !l.paused {
		l.t += float32(dt)
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	renderEnd := profiler.Start("Layer2D.OnRender")
	defer renderEnd()

	l.r2d.BeginScene(l.cam.VP())
	l.r2d.DrawSubTexQuad(0, 0, 32, 32, l.player, colors.White, l.t)
	if err := l.r2d.EndScene(); err != nil {
		e.Log.Errorf("2D layer: %v", err)
	}
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}

package main

import (
	"context"
	"time"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/profiler"
	"github.com/hubastard/grove/engine/scene"
	"github.com/hubastard/grove/engine/ui"
)

var heading = colors.Yellow

// LayerDebug builds the stats window each frame through the overlay.
type LayerDebug struct {
	r2d       *renderer2d.Renderer2D
	ui        *renderer2d.Renderer2D
	dev       core.Device
	playerTex ui.TextureID

	layer2D    *Layer2D
	classifier *overlay.Classifier[scene.CamAction]
	lastFrame  time.Time
	frameMs    float32
	tick       int
	title      string
	rt         profiler.Runtime
	scopes     []profiler.Scope
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	e.Layers.ForEach(func(ly core.Layer) {
		if l2, ok := ly.(*Layer2D); ok {
			l.layer2D = l2
		}
	})
	l.classifier, _ = core.Fetch[*overlay.Classifier[scene.CamAction]](e.World)
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

// OnUpdate samples the runtime counters at the tick rate.
func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {
	l.tick++
	if l.tick%30 == 1 {
		l.rt = profiler.ReadRuntime()
		l.scopes = profiler.Summary()
	}
}

func (l *LayerDebug) OnFrame(ctx context.Context, e *core.Engine) {
	now := time.Now()
	if !l.lastFrame.IsZero() {
		l.frameMs = float32(now.Sub(l.lastFrame).Seconds() * 1000)
	}
	l.lastFrame = now

	overlay.With(ctx, func(f *ui.Frame) {
		defer profiler.Start("LayerDebug.OnFrame")()

		f.BeginView(ui.Props{
			Name:    "Stats",
			Axis:    ui.Vertical,
			Gap:     2,
			Padding: ui.Insets(12, 12, 12, 12),
			Bg:      colors.Black.WithAlpha(0.6),
			BoundsX: 16,
			BoundsY: 16,
		})
		defer f.EndView()

		f.LabelColored("Frame", heading)
		f.Labelf("  %d  %.3f ms (%.1f FPS)", l.tick, l.frameMs, 1000/max(l.frameMs, 0.001))

		st := l.r2d.Stats()
		f.LabelColored("2D Renderer", heading)
		f.Labelf("  Draw Calls: %d", st.DrawCalls)
		f.Labelf("  Quads: %d", st.QuadCount)
		f.Labelf("  Vertices: %d", st.TotalVertexCount())
		f.Labelf("  Textures: %d", st.TextureCount)
		f.Labelf("  UI Quads: %d", l.ui.Stats().QuadCount)

		f.LabelColored("Memory", heading)
		f.Labelf("  Usage: %.3f MB", float64(l.rt.HeapAlloc)/(1<<20))
		f.Labelf("  Allocs: %d", l.rt.Mallocs)
		f.Labelf("  Goroutines: %d", l.rt.Goroutines)
		f.Labelf("  CPUs: %d", l.rt.CPUs)

		f.LabelColored("GPU", heading)
		f.Labelf("  Vendor: %s", l.dev.GPUVendor())
		f.Labelf("  Renderer: %s", l.dev.GPURenderer())
		f.Labelf("  Version: %s", l.dev.GPUVersion())

		if profiler.Enabled {
			f.LabelColored("Scopes", heading)
			for i, sc := range l.scopes {
				if i == 4 {
					break
				}
				f.Labelf("  %s: %.2f ms x%d", sc.Name, float64(sc.Mean().Microseconds())/1000, sc.Calls)
			}
		}

		if l.classifier != nil {
			fwd, capt := l.classifier.Stats()
			f.LabelColored("Input", heading)
			f.Labelf("  Forwarded: %d", fwd)
			f.Labelf("  Captured: %d", capt)
		}

		f.Separator()
		if l.layer2D != nil {
			f.Checkbox("Pause rotation", &l.layer2D.paused)
		}
		if f.InputText("Title", &l.title) {
			e.Window.SetTitle(l.title)
		}
		f.Image(l.playerTex, 32, 32)
		if f.Button("Dump profile") {
			if path, err := profiler.OpenProfilerGraph(); err == nil {
				e.Log.Infof("speedscope dump: %s", path)
			} else {
				e.Log.Errorf("profiler dump: %v", err)
			}
		}
	})
}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool { return false }

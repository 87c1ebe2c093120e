// Package uirender draws UI draw data with the 2D batch renderer.
package uirender

import (
	"context"
	"fmt"
	"math"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
	"github.com/hubastard/grove/engine/scene"
	"github.com/hubastard/grove/engine/text"
	"github.com/hubastard/grove/engine/ui"
)

// Backend is an overlay sink for GPU devices. Commands are drawn in order
// in one scene, clipped to the display.
type Backend struct {
	r2d  *renderer2d.Renderer2D
	font *text.Font
	cam  *scene.OrthoCamera2D
	size [2]float32
}

// New returns a backend drawing with r2d. Text uses font.
func New(r2d *renderer2d.Renderer2D, font *text.Font) *Backend {
	return &Backend{r2d: r2d, font: font, cam: scene.NewScreen2D(1, 1)}
}

// Stats reports the batch statistics of the last submitted frame.
func (b *Backend) Stats() renderer2d.Statistics { return b.r2d.Stats() }

func (b *Backend) Submit(_ context.Context, data *ui.DrawData, textures []core.Texture) error {
	if data.Empty() {
		return nil
	}
	if data.DisplaySize != b.size {
		b.size = data.DisplaySize
		b.cam.SetViewportPixels(int(b.size[0]), int(b.size[1]))
	}

	dev := b.r2d.Device()
	sx, sy := data.FramebufferScale[0], data.FramebufferScale[1]
	dev.SetScissor(true, 0, 0, int(math.Ceil(float64(b.size[0]*sx))), int(math.Ceil(float64(b.size[1]*sy))))
	defer dev.SetScissor(false, 0, 0, 0, 0)

	b.r2d.BeginScene(b.cam.VP())
	for i := range data.Cmds {
		c := &data.Cmds[i]
		switch c.Kind {
		case ui.DrawRect:
			b.r2d.DrawRect(c.X, c.Y, c.W, c.H, c.Color)
		case ui.DrawText:
			if b.font != nil {
				text.DrawText(b.r2d, b.font, c.X, c.Y, c.FontSize, c.Text, c.Color)
			}
		case ui.DrawImage:
			idx := int(c.Texture) - 1
			if idx < 0 || idx >= len(textures) {
				return fmt.Errorf("uirender: texture %d of %d", c.Texture, len(textures))
			}
			b.r2d.DrawRectUV(c.X, c.Y, c.W, c.H, textures[idx], c.Color, c.UV[0], c.UV[1], c.UV[2], c.UV[3])
		}
	}
	return b.r2d.EndScene()
}

package overlay

import (
	"context"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

// Sink turns finalized UI draw data into draw calls. textures[n-1] is the
// texture with id n. Hosts insert their Sink into the World under the
// interface type, core.Insert[overlay.Sink](w, s), before the plugin builds.
type Sink interface {
	Submit(ctx context.Context, data *ui.DrawData, textures []core.Texture) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, data *ui.DrawData, textures []core.Texture) error

func (f SinkFunc) Submit(ctx context.Context, data *ui.DrawData, textures []core.Texture) error {
	return f(ctx, data, textures)
}

// DrawPass submits the last finalized frame. It is added to the plan at
// core.OrderOverlay so it draws after all other content of its target.
type DrawPass struct {
	shared *SharedState
	sink   Sink
	log    *core.Logger

	submitted uint64
}

func NewDrawPass(shared *SharedState, sink Sink, log *core.Logger) *DrawPass {
	return &DrawPass{shared: shared, sink: sink, log: log}
}

func (p *DrawPass) Name() string { return "overlay.draw" }

func (p *DrawPass) Draw(ctx context.Context, _ *core.World) error {
	data := WithExclusiveAccess(p.shared, func(c *ui.Context) *ui.DrawData { return c.DrawData() })
	if data == nil {
		return nil
	}
	textures := p.shared.Textures()
	data = p.checkTextures(data, len(textures))
	p.submitted = data.Frame
	return p.sink.Submit(ctx, data, textures)
}

// Submitted returns the frame number of the last submitted draw data.
func (p *DrawPass) Submitted() uint64 { return p.submitted }

// checkTextures drops commands that reference unregistered textures.
func (p *DrawPass) checkTextures(data *ui.DrawData, n int) *ui.DrawData {
	bad := 0
	for _, c := range data.Cmds {
		if !validTexture(c.Texture, n) {
			bad++
		}
	}
	if bad == 0 {
		return data
	}
	out := *data
	out.Cmds = make([]ui.DrawCmd, 0, len(data.Cmds)-bad)
	for _, c := range data.Cmds {
		if validTexture(c.Texture, n) {
			out.Cmds = append(out.Cmds, c)
			continue
		}
		p.log.Errorf("overlay: frame %d: dropping draw command with unregistered texture %d (%d registered)", data.Frame, c.Texture, n)
	}
	return &out
}

func validTexture(id ui.TextureID, n int) bool {
	return id == ui.NoTexture || id == ui.FontTextureID || int(id) <= n
}

package uirender

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/gfx/gfxtest"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
	"github.com/hubastard/grove/engine/text"
	"github.com/hubastard/grove/engine/ui"
)

func newBackend(t *testing.T) (*Backend, *gfxtest.Device) {
	t.Helper()
	dev := gfxtest.New()
	r2d, err := renderer2d.NewDefault(dev, 256)
	if err != nil {
		t.Fatal(err)
	}
	font, err := text.Basic(dev)
	if err != nil {
		t.Fatal(err)
	}
	return New(r2d, font), dev
}

func TestSubmitDrawsInOneBatch(t *testing.T) {
	b, dev := newBackend(t)
	img, _ := dev.CreateTexture(core.TextureDesc{Width: 4, Height: 4})
	data := &ui.DrawData{
		DisplaySize:      [2]float32{400, 300},
		FramebufferScale: [2]float32{2, 2},
		Cmds: []ui.DrawCmd{
			{Kind: ui.DrawRect, X: 8, Y: 8, W: 100, H: 20, Color: colors.Gray},
			{Kind: ui.DrawText, X: 12, Y: 11, W: 14, H: 13, Text: "OK", FontSize: 13, Color: colors.White, Texture: ui.FontTextureID},
			{Kind: ui.DrawImage, X: 8, Y: 40, W: 16, H: 16, Texture: 1, UV: [4]float32{0, 0, 1, 1}, Color: colors.White},
		},
	}
	if err := b.Submit(context.Background(), data, []core.Texture{img}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(dev.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.Draws))
	}
	if got := b.Stats().QuadCount; got != 4 {
		t.Errorf("QuadCount = %d, want 4", got)
	}
	if diff := cmp.Diff(dev.Draws[0].Scissor, &[4]int{0, 0, 800, 600}); diff != "" {
		t.Errorf("scissor: Diff (-got +want)\n%s", diff)
	}
}

func TestSubmitEmpty(t *testing.T) {
	b, dev := newBackend(t)
	if err := b.Submit(context.Background(), &ui.DrawData{}, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.Submit(context.Background(), nil, nil); err != nil {
		t.Fatal(err)
	}
	if len(dev.Draws) != 0 {
		t.Errorf("draws = %d for empty data", len(dev.Draws))
	}
}

func TestSubmitUnknownTexture(t *testing.T) {
	b, _ := newBackend(t)
	data := &ui.DrawData{
		DisplaySize: [2]float32{10, 10},
		Cmds:        []ui.DrawCmd{{Kind: ui.DrawImage, W: 1, H: 1, Texture: 3}},
	}
	if err := b.Submit(context.Background(), data, nil); err == nil {
		t.Error("Submit accepted a texture outside the list")
	}
}

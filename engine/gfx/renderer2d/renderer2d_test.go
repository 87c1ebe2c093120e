package renderer2d

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/gfx/gfxtest"
)

func TestDrawRectTopLeft(t *testing.T) {
	dev := gfxtest.New()
	rd, err := NewDefault(dev, 4)
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	rd.BeginScene([16]float32{})
	rd.DrawRect(10, 20, 4, 2, colors.Red)
	if err := rd.EndScene(); err != nil {
		t.Fatalf("EndScene: %v", err)
	}

	if len(dev.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.Draws))
	}
	var pos [][2]float32
	v := dev.Draws[0].Vertices
	for i := 0; i < len(v); i += vStride {
		pos = append(pos, [2]float32{v[i], v[i+1]})
	}
	want := [][2]float32{{10, 20}, {14, 20}, {10, 22}, {14, 22}}
	if diff := cmp.Diff(pos, want); diff != "" {
		t.Errorf("corners: Diff (-got +want)\n%s", diff)
	}
	if got := rd.Stats(); got.DrawCalls != 1 || got.QuadCount != 1 {
		t.Errorf("Stats = %+v", got)
	}
}

func TestBatchSplits(t *testing.T) {
	dev := gfxtest.New()
	rd, err := NewDefault(dev, 2)
	if err != nil {
		t.Fatal(err)
	}
	rd.BeginScene([16]float32{})
	for i := 0; i < 5; i++ {
		rd.DrawRect(0, 0, 1, 1, colors.White)
	}
	if err := rd.EndScene(); err != nil {
		t.Fatal(err)
	}
	if got := rd.Stats().DrawCalls; got != 3 {
		t.Errorf("DrawCalls = %d, want 3", got)
	}
}

func TestTextureSlotsOverflow(t *testing.T) {
	dev := gfxtest.New()
	rd, err := NewDefault(dev, 100)
	if err != nil {
		t.Fatal(err)
	}
	rd.BeginScene([16]float32{})
	for i := 0; i < maxTexSlots; i++ {
		tex, _ := dev.CreateTexture(core.TextureDesc{Width: 1, Height: 1})
		rd.DrawRectUV(0, 0, 1, 1, tex, colors.White, 0, 0, 1, 1)
	}
	if err := rd.EndScene(); err != nil {
		t.Fatal(err)
	}
	// slot 0 is the white texture, so the 16th texture starts a new batch
	if got := len(dev.Draws); got != 2 {
		t.Fatalf("draws = %d, want 2", got)
	}
	if got := len(dev.Draws[0].Samplers); got != maxTexSlots {
		t.Errorf("first batch samplers = %d, want %d", got, maxTexSlots)
	}
}

func TestUploadErrorReported(t *testing.T) {
	dev := gfxtest.New()
	rd, err := NewDefault(dev, 4)
	if err != nil {
		t.Fatal(err)
	}
	dev.FailMesh = true
	rd.BeginScene([16]float32{})
	rd.DrawRect(0, 0, 1, 1, colors.White)
	if err := rd.EndScene(); !errors.Is(err, gfxtest.ErrMeshFull) {
		t.Errorf("EndScene = %v, want ErrMeshFull", err)
	}
	if len(dev.Draws) != 0 {
		t.Errorf("draws = %d after failed upload", len(dev.Draws))
	}

	dev.FailMesh = false
	rd.BeginScene([16]float32{})
	rd.DrawRect(0, 0, 1, 1, colors.White)
	if err := rd.EndScene(); err != nil {
		t.Errorf("next scene EndScene = %v", err)
	}
}

func TestFromGrid(t *testing.T) {
	got := FromGrid(nil, 1, 2, 16, 16, 64, 64)
	want := SubTexture2D{U0: 0.25, V0: 0.5, U1: 0.5, V1: 0.75}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("FromGrid: Diff (-got +want)\n%s", diff)
	}
}

package text

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/gfx/gfxtest"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
	"github.com/hubastard/grove/engine/ui"
)

var _ ui.FontMetrics = (*Font)(nil)

func TestBasicMeasure(t *testing.T) {
	dev := gfxtest.New()
	f, err := Basic(dev)
	if err != nil {
		t.Fatalf("Basic: %v", err)
	}
	defer f.Close()

	if len(dev.Textures) != 1 {
		t.Fatalf("textures uploaded = %d, want 1", len(dev.Textures))
	}
	tests := []struct {
		s            string
		size         float32
		wantW, wantH float32
	}{
		{"", 13, 0, 13},
		{"ab", 13, 14, 13},
		{"ab", 26, 28, 26},
		{"ab", 0, 14, 13},
		{"abc\nd", 13, 21, 26},
	}
	for _, tt := range tests {
		w, h := f.Measure(tt.s, tt.size)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Measure(%q, %v) = %v,%v, want %v,%v", tt.s, tt.size, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestAtlasStraightAlpha(t *testing.T) {
	dev := gfxtest.New()
	f, err := Basic(dev)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	pix := dev.Textures[0].Pixels
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 {
			t.Fatalf("pixel %d = %v, want white", i/4, pix[i:i+4])
		}
	}
	g := f.Glyphs['A']
	if g.W == 0 || g.U1 <= g.U0 || g.V1 <= g.V0 {
		t.Errorf("glyph A = %+v", g)
	}
}

func TestDrawTextQuads(t *testing.T) {
	dev := gfxtest.New()
	f, err := Basic(dev)
	if err != nil {
		t.Fatal(err)
	}
	r2d, err := renderer2d.NewDefault(dev, 64)
	if err != nil {
		t.Fatal(err)
	}
	r2d.BeginScene([16]float32{})
	DrawText(r2d, f, 0, 0, 13, "hi", colors.White)
	if err := r2d.EndScene(); err != nil {
		t.Fatal(err)
	}
	if got := r2d.Stats().QuadCount; got != 2 {
		t.Errorf("QuadCount = %d, want 2", got)
	}
}

func TestPackShelves(t *testing.T) {
	boxes := []glyphBox{{r: 'a', w: 100, h: 10}, {r: 'b', w: 100, h: 20}, {r: 'c', w: 100, h: 5}, {r: ' '}}
	size, at, err := packShelves(boxes)
	if err != nil {
		t.Fatal(err)
	}
	if size != atlasMin {
		t.Fatalf("size = %d, want %d", size, atlasMin)
	}
	want := map[rune]image.Point{'a': {2, 2}, 'b': {104, 2}, 'c': {2, 24}}
	if diff := cmp.Diff(at, want); diff != "" {
		t.Errorf("Diff (-got +want):\n%s", diff)
	}

	if _, _, err := packShelves([]glyphBox{{r: 'x', w: atlasMax, h: 1}}); err == nil {
		t.Error("oversized glyph packed")
	}
}

package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/grove/engine/gfx/gfxtest"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPNGTightRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 1, color.NRGBA{0, 0, 255, 255})
	l := Loader{FS: fstest.MapFS{
		"textures/p.png": {Data: encodePNG(t, img)},
	}}

	w, h, pix, err := l.PNG("p.png")
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("size = %dx%d", w, h)
	}
	want := []byte{
		255, 0, 0, 255, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 255, 255,
	}
	if diff := cmp.Diff(pix, want); diff != "" {
		t.Errorf("pixels: Diff (-got +want)\n%s", diff)
	}
}

func TestTextureUpload(t *testing.T) {
	l := Loader{FS: fstest.MapFS{
		"textures/one.png": {Data: encodePNG(t, image.NewRGBA(image.Rect(0, 0, 3, 1)))},
	}}
	dev := gfxtest.New()
	tex, err := l.Texture(dev, "one.png")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	if w, h := tex.Size(); w != 3 || h != 1 {
		t.Errorf("Size = %dx%d", w, h)
	}
	if got := len(dev.Textures[0].Pixels); got != 12 {
		t.Errorf("uploaded %d bytes, want 12", got)
	}
}

func TestMissingAndInvalid(t *testing.T) {
	l := Loader{FS: fstest.MapFS{
		"textures/bad.png": {Data: []byte("nope")},
		"shaders/a.vert":   {Data: []byte("void main() {}")},
	}}
	if _, _, _, err := l.PNG("missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing PNG err = %v", err)
	}
	if _, _, _, err := l.PNG("bad.png"); err == nil {
		t.Error("invalid PNG decoded")
	}
	src, err := l.Shader("a.vert")
	if err != nil || src != "void main() {}" {
		t.Errorf("Shader = %q, %v", src, err)
	}
	if _, err := l.Font("none.ttf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing font err = %v", err)
	}
}

// Package assets loads textures, shaders and fonts from a file system.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/hubastard/grove/engine/core"
)

// Loader resolves asset names below FS: textures/, shaders/ and fonts/.
type Loader struct {
	FS fs.FS
}

// Dir returns a loader rooted at a directory on disk.
func Dir(root string) Loader { return Loader{FS: os.DirFS(root)} }

// PNG returns width, height, and tightly packed RGBA8 pixels (row-major,
// top-left origin).
func (l Loader) PNG(name string) (w, h int, rgba []byte, err error) {
	p := path.Join("textures", name)
	f, err := l.FS.Open(p)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", p, err)
	}
	defer f.Close()
	w, h, rgba, err = DecodePNG(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", p, err)
	}
	return w, h, rgba, nil
}

// Texture loads a PNG and uploads it with nearest filtering.
func (l Loader) Texture(dev core.Device, name string) (core.Texture, error) {
	w, h, pixels, err := l.PNG(name)
	if err != nil {
		return nil, err
	}
	return dev.CreateTexture(core.TextureDesc{
		Width:     w,
		Height:    h,
		Format:    core.TextureRGBA8,
		Pixels:    pixels,
		MinFilter: "linear",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
}

// Shader reads a GLSL source file.
func (l Loader) Shader(name string) (string, error) {
	b, err := fs.ReadFile(l.FS, path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// Font reads raw font data.
func (l Loader) Font(name string) ([]byte, error) {
	b, err := fs.ReadFile(l.FS, path.Join("fonts", name))
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	return b, nil
}

// DecodePNG decodes a PNG into tightly packed RGBA8 rows.
func DecodePNG(r io.Reader) (w, h int, rgba []byte, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return 0, 0, nil, err
	}

	// Ensure RGBA
	rgbaImg := imageToRGBA(img)
	w, h = rgbaImg.Bounds().Dx(), rgbaImg.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	src := rgbaImg.Pix
	srcStride := rgbaImg.Stride

	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], src[y*srcStride:y*srcStride+w*4])
	}

	return w, h, out, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

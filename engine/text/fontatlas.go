package text

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hubastard/grove/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is a glyph atlas uploaded as one RGBA texture: white glyphs with
// alpha coverage, tinted when drawn.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Kerning                  map[rune]map[rune]float32
	Texture                  core.Texture
	AtlasW, AtlasH           int
	closeFace                func()
}

func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// LoadFS reads a TrueType or OpenType font from fsys.
func LoadFS(dev core.Device, fsys fs.FS, name string, sizePx float32) (*Font, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Load(dev, data, sizePx)
}

// Load builds an atlas from TrueType or OpenType data.
func Load(dev core.Device, data []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	f, err := fromFace(dev, face, sizePx)
	if err != nil {
		_ = face.Close()
		return nil, err
	}
	return f, nil
}

// Basic returns the built-in 7x13 bitmap font.
func Basic(dev core.Device) (*Font, error) {
	return fromFace(dev, basicfont.Face7x13, 13)
}

// Latin-1 printable range.
const firstRune, lastRune = 32, 255

const (
	atlasPadding = 2
	atlasMin     = 256
	atlasMax     = 4096
)

// glyphBox is a glyph's bitmap size and placement relative to the pen.
type glyphBox struct {
	r       rune
	w, h    int
	advance float32
	left    float32 // bearing from the pen to the bitmap's left edge
	top     float32 // baseline to the bitmap's top edge
}

func fromFace(dev core.Device, face font.Face, sizePx float32) (*Font, error) {
	boxes := measureGlyphs(face)
	size, at, err := packShelves(boxes)
	if err != nil {
		return nil, err
	}
	pix, glyphs := rasterize(face, boxes, size, at)

	tex, err := dev.CreateTexture(core.TextureDesc{
		Width: size, Height: size,
		Format:    core.TextureRGBA8,
		Pixels:    pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("upload atlas: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	return &Font{
		SizePx:    sizePx,
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   float32(m.Height.Round()) - ascent + descent,
		Glyphs:    glyphs,
		Kerning:   kerningTable(face, boxes),
		Texture:   tex,
		AtlasW:    size,
		AtlasH:    size,
		closeFace: func() { _ = face.Close() },
	}, nil
}

func measureGlyphs(face font.Face) []glyphBox {
	out := make([]glyphBox, 0, lastRune-firstRune+1)
	for r := rune(firstRune); r <= lastRune; r++ {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		out = append(out, glyphBox{
			r:       r,
			w:       (b.Max.X - b.Min.X).Round(),
			h:       (b.Max.Y - b.Min.Y).Round(),
			advance: float32(adv.Round()),
			left:    float32(b.Min.X.Round()),
			top:     float32(-b.Min.Y.Round()),
		})
	}
	return out
}

// packShelves places the visible glyphs in rows on the smallest square
// atlas, doubling from atlasMin, that holds them all.
func packShelves(boxes []glyphBox) (int, map[rune]image.Point, error) {
	for size := atlasMin; size <= atlasMax; size *= 2 {
		if at, ok := shelves(boxes, size); ok {
			return size, at, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas too large (>%d)", atlasMax)
}

func shelves(boxes []glyphBox, size int) (map[rune]image.Point, bool) {
	at := make(map[rune]image.Point, len(boxes))
	x, y, rowH := atlasPadding, atlasPadding, 0
	for _, g := range boxes {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if x+g.w+atlasPadding > size {
			x, y, rowH = atlasPadding, y+rowH+atlasPadding, 0
		}
		if x+g.w+atlasPadding > size || y+g.h+atlasPadding > size {
			return nil, false
		}
		at[g.r] = image.Pt(x, y)
		x += g.w + atlasPadding
		rowH = max(rowH, g.h)
	}
	return at, true
}

// rasterize draws the glyphs white on a transparent atlas and returns the
// straight-alpha pixels the batch shader samples.
func rasterize(face font.Face, boxes []glyphBox, size int, at map[rune]image.Point) ([]byte, map[rune]Glyph) {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	pen := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	inv := 1 / float32(size)

	glyphs := make(map[rune]Glyph, len(boxes))
	for _, g := range boxes {
		gl := Glyph{Rune: g.r, Advance: g.advance, BearingX: g.left, BearingY: g.top, W: g.w, H: g.h}
		if p, ok := at[g.r]; ok {
			pen.Dot = fixed.P(p.X-int(g.left), p.Y+int(g.top))
			pen.DrawString(string(g.r))
			gl.U0, gl.V0 = float32(p.X)*inv, float32(p.Y)*inv
			gl.U1, gl.V1 = float32(p.X+g.w)*inv, float32(p.Y+g.h)*inv
		}
		glyphs[g.r] = gl
	}

	// coverage lives in alpha; RGB stays white
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = 255, 255, 255
	}
	return dst.Pix, glyphs
}

func kerningTable(face font.Face, boxes []glyphBox) map[rune]map[rune]float32 {
	kern := make(map[rune]map[rune]float32)
	for _, a := range boxes {
		for _, b := range boxes {
			dx := face.Kern(a.r, b.r)
			if dx == 0 {
				continue
			}
			if kern[a.r] == nil {
				kern[a.r] = make(map[rune]float32)
			}
			kern[a.r][b.r] = float32(dx.Round())
		}
	}
	return kern
}

package text

import (
	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at (x,y), scaled to size pixels.
// A size of zero draws at the atlas size. Positive Y goes downward
// (matching the 2D projection).
func DrawText(r2d *renderer2d.Renderer2D, f *Font, x, y, size float32, s string, color colors.Color) {
	scale := f.scale(size)
	penX := x
	baseY := y + f.Ascent*scale // move origin to top left
	lineH := f.LineHeight() * scale
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += lineH
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				penX += sp.Advance * scale
			}
			prev = r
			continue
		}

		if prev >= 0 {
			penX += f.Kerning[prev][r] * scale
		}

		if g.W > 0 && g.H > 0 {
			// top = baseline - BearingY
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			r2d.DrawRectUV(
				left, top,
				float32(g.W)*scale, float32(g.H)*scale,
				f.Texture, color,
				g.U0, g.V0, g.U1, g.V1,
			)
		}

		penX += g.Advance * scale
		prev = r
	}
}

// Measure returns the size of s drawn at size pixels. It satisfies
// ui.FontMetrics.
func (f *Font) Measure(s string, size float32) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := f.LineHeight()
	height = lineH

	for _, r := range s {
		if r == '\n' {
			if lineW > width {
				width = lineW
			}
			lineW = 0
			height += lineH
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 {
			lineW += f.Kerning[prev][r]
		}

		lineW += g.Advance
		prev = r
	}

	if lineW > width {
		width = lineW
	}
	scale := f.scale(size)
	return width * scale, height * scale
}

func (f *Font) scale(size float32) float32 {
	if size <= 0 || f.SizePx <= 0 {
		return 1
	}
	return size / f.SizePx
}

// Baseline-to-top distance (useful to position text by top-left).
func (f *Font) BaselineToTop() float32    { return f.Ascent }
func (f *Font) BaselineToBottom() float32 { return -f.Descent }
func (f *Font) LineHeight() float32       { return f.Ascent - f.Descent + f.LineGap }

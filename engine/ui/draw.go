package ui

import "github.com/hubastard/grove/engine/colors"

// TextureID names a texture in draw commands. Zero means untextured;
// FontTextureID is the font atlas; other values index the host's
// registered texture list, starting at 1.
type TextureID uint32

const (
	NoTexture     TextureID = 0
	FontTextureID TextureID = ^TextureID(0)
)

type DrawKind uint8

const (
	DrawRect DrawKind = iota
	DrawText
	DrawImage
)

// DrawCmd is one primitive of the finalized output. Rects are in logical
// display pixels with a top-left origin.
type DrawCmd struct {
	Kind       DrawKind
	X, Y, W, H float32
	Color      colors.Color
	Texture    TextureID
	UV         [4]float32 // u0, v0, u1, v1 for DrawImage
	Text       string
	FontSize   float32
}

// DrawData is the immutable output of one frame.
type DrawData struct {
	Frame            uint64
	DisplaySize      [2]float32
	FramebufferScale [2]float32
	Cmds             []DrawCmd
	Dropped          int // widgets skipped because the command buffer was full
}

// TextureIDs returns the distinct textures referenced by the commands, in
// first-use order. NoTexture is omitted.
func (d *DrawData) TextureIDs() []TextureID {
	if d == nil {
		return nil
	}
	var out []TextureID
	seen := make(map[TextureID]bool)
	for _, c := range d.Cmds {
		if c.Texture == NoTexture || seen[c.Texture] {
			continue
		}
		seen[c.Texture] = true
		out = append(out, c.Texture)
	}
	return out
}

// Empty reports whether there is nothing to draw.
func (d *DrawData) Empty() bool { return d == nil || len(d.Cmds) == 0 }

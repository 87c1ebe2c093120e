// Package renderer2d batches textured quads into as few draw calls as the
// device's sampler limit allows.
package renderer2d

import (
	_ "embed"
	"fmt"
	"math"
	"strconv"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const (
	vStride      = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
)

var quadLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

//go:embed shaders/quad.vert
var defaultVertSrc string

//go:embed shaders/quad.frag
var defaultFragSrc string

// Statistics captures the counts generated during a scene.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this scene.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// Quad is one batched rectangle. X and Y give its center; Rotation turns it
// around the center, in radians. A nil Texture draws a solid Color.
type Quad struct {
	X, Y, W, H float32
	Rotation   float32
	Color      colors.Color
	Texture    core.Texture
	UV         [4]float32 // u0, v0, u1, v1
}

var fullUV = [4]float32{0, 0, 1, 1}

type Renderer2D struct {
	dev   core.Device
	pipe  core.Pipeline
	mesh  core.Mesh
	white core.Texture // always bound to slot 0

	slots    [maxTexSlots]core.Texture
	nslots   int
	slotName [maxTexSlots]string

	verts    []float32
	inds     []uint32
	pending  int
	maxQuads int

	vp       [16]float32
	samplers map[string]core.Texture
	uniforms map[string]any
	stats    Statistics
	err      error
}

// NewDefault creates a renderer with the built-in batch shaders.
func NewDefault(dev core.Device, maxQuads int) (*Renderer2D, error) {
	return New(dev, defaultVertSrc, defaultFragSrc, maxQuads)
}

// New compiles the batch pipeline and allocates a mesh for maxQuads quads.
func New(dev core.Device, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := dev.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: pipeline: %w", err)
	}
	white, err := dev.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: white texture: %w", err)
	}
	nv, ni := maxQuads*vertsPerQuad*vStride, maxQuads*indsPerQuad
	mesh, err := dev.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, nv),
		Indices:  make([]uint32, ni),
		Layout:   quadLayout,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: mesh: %w", err)
	}

	rd := &Renderer2D{
		dev:      dev,
		pipe:     pipe,
		mesh:     mesh,
		white:    white,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, nv),
		inds:     make([]uint32, 0, ni),
		samplers: make(map[string]core.Texture, maxTexSlots),
		uniforms: make(map[string]any, 1),
	}
	for i := range rd.slotName {
		rd.slotName[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.reset()
	return rd, nil
}

// BeginScene starts a scene drawn with the view-projection matrix vp.
func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.err = nil
	rd.reset()
}

// EndScene flushes the last batch and reports the first upload error of
// the scene.
func (rd *Renderer2D) EndScene() error {
	rd.flush()
	return rd.err
}

// Flush submits the pending batch. Callers changing device state between
// quads, such as the scissor rect, flush first.
func (rd *Renderer2D) Flush() { rd.flush() }

func (rd *Renderer2D) Device() core.Device { return rd.dev }

// Stats returns the counts of the current scene.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawRect draws a solid rect given by its top-left corner.
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	rd.Submit(Quad{X: x + w*0.5, Y: y + h*0.5, W: w, H: h, Color: color, UV: fullUV})
}

// DrawRectUV draws a textured rect given by its top-left corner.
func (rd *Renderer2D) DrawRectUV(x, y, w, h float32, tex core.Texture, tint colors.Color, u0, v0, u1, v1 float32) {
	rd.Submit(Quad{X: x + w*0.5, Y: y + h*0.5, W: w, H: h, Color: tint, Texture: tex, UV: [4]float32{u0, v0, u1, v1}})
}

// DrawSubTexQuad draws sub centered on x, y.
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.Submit(Quad{
		X: x, Y: y, W: w, H: h,
		Rotation: rotationRad,
		Color:    tint,
		Texture:  sub.Texture,
		UV:       [4]float32{sub.U0, sub.V0, sub.U1, sub.V1},
	})
}

// Submit appends q to the batch, flushing first when the batch is full or
// out of texture slots.
func (rd *Renderer2D) Submit(q Quad) {
	if rd.pending >= rd.maxQuads {
		rd.flush()
	}
	tex := q.Texture
	if tex == nil {
		tex = rd.white
	}
	slot := float32(rd.slot(tex))

	hw, hh := q.W*0.5, q.H*0.5
	u0, v0, u1, v1 := q.UV[0], q.UV[1], q.UV[2], q.UV[3]
	// TL, TR, BL, BR; y grows downward
	corners := [4][4]float32{
		{-hw, -hh, u0, v0},
		{hw, -hh, u1, v0},
		{-hw, hh, u0, v1},
		{hw, hh, u1, v1},
	}
	sin, cos := math.Sincos(float64(q.Rotation))
	c, s := float32(cos), float32(sin)

	base := uint32(len(rd.verts) / vStride)
	for _, p := range corners {
		rd.verts = append(rd.verts,
			p[0]*c-p[1]*s+q.X, p[0]*s+p[1]*c+q.Y,
			q.Color[0], q.Color[1], q.Color[2], q.Color[3],
			p[2], p[3],
			slot,
		)
	}
	rd.inds = append(rd.inds, base, base+2, base+1, base+1, base+2, base+3)
	rd.pending++
	rd.stats.QuadCount++
}

// slot returns the batch slot bound to t, binding it if needed.
func (rd *Renderer2D) slot(t core.Texture) int {
	for i := 0; i < rd.nslots; i++ {
		if rd.slots[i] == t {
			return i
		}
	}
	if rd.nslots == maxTexSlots {
		rd.flush()
	}
	i := rd.nslots
	rd.slots[i] = t
	rd.nslots++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.nslots)
	return i
}

func (rd *Renderer2D) flush() {
	if rd.pending == 0 {
		return
	}
	defer rd.reset()

	if err := rd.dev.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		if rd.err == nil {
			rd.err = fmt.Errorf("renderer2d: %w", err)
		}
		return
	}
	clear(rd.samplers)
	for i := 0; i < rd.nslots; i++ {
		rd.samplers[rd.slotName[i]] = rd.slots[i]
	}
	rd.uniforms["uVP"] = rd.vp

	rd.dev.Draw(core.DrawCmd{
		Pipe:     rd.pipe,
		Mesh:     rd.mesh,
		Uniforms: rd.uniforms,
		Samplers: rd.samplers,
	})
	rd.stats.DrawCalls++
}

func (rd *Renderer2D) reset() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.pending = 0
	clear(rd.slots[:])
	rd.slots[0] = rd.white
	rd.nslots = 1
}

// Package gfxtest provides a recording core.Device for tests that draw
// without a GPU.
package gfxtest

import (
	"errors"
	"sync"

	"github.com/hubastard/grove/engine/core"
)

var ErrMeshFull = errors.New("gfxtest: mesh capacity exceeded")

type Handle struct {
	N    uint32
	W, H int
}

func (h Handle) ID() uint32       { return h.N }
func (h Handle) Size() (int, int) { return h.W, h.H }

// Draw is one recorded draw call. Vertices and Indices are copies of the
// mesh contents at the time of the call.
type Draw struct {
	Pipe     core.Pipeline
	Vertices []float32
	Indices  []uint32
	Uniforms map[string]any
	Samplers map[string]core.Texture
	Scissor  *[4]int
}

type mesh struct {
	verts []float32
	inds  []uint32
	vcap  int
	icap  int
}

// Device records every call. The zero value is not usable; use New.
type Device struct {
	mu       sync.Mutex
	next     uint32
	meshes   map[uint32]*mesh
	scissor  *[4]int
	Textures []core.TextureDesc
	Draws    []Draw
	Clears   [][4]float32
	Size     [2]int
	FailMesh bool // UpdateMesh fails when set
}

func New() *Device { return &Device{meshes: make(map[uint32]*mesh)} }

func (d *Device) handle(w, h int) Handle {
	d.next++
	return Handle{N: d.next, W: w, H: h}
}

func (d *Device) Resize(w, h int) {
	d.mu.Lock()
	d.Size = [2]int{w, h}
	d.mu.Unlock()
}

func (d *Device) Clear(r, g, b, a float32) {
	d.mu.Lock()
	d.Clears = append(d.Clears, [4]float32{r, g, b, a})
	d.mu.Unlock()
}

func (d *Device) Shutdown() {}

func (d *Device) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handle(0, 0), nil
}

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Textures = append(d.Textures, desc)
	return d.handle(desc.Width, desc.Height), nil
}

func (d *Device) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle(0, 0)
	d.meshes[h.N] = &mesh{vcap: len(desc.Vertices), icap: len(desc.Indices)}
	return h, nil
}

func (d *Device) UpdateMesh(m core.Mesh, vertices []float32, indices []uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	ms := d.meshes[m.ID()]
	if d.FailMesh || ms == nil || len(vertices) > ms.vcap || len(indices) > ms.icap {
		return ErrMeshFull
	}
	ms.verts = append(ms.verts[:0], vertices...)
	ms.inds = append(ms.inds[:0], indices...)
	return nil
}

func (d *Device) Draw(cmd core.DrawCmd) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ms := d.meshes[cmd.Mesh.ID()]
	dr := Draw{
		Pipe:     cmd.Pipe,
		Uniforms: make(map[string]any, len(cmd.Uniforms)),
		Samplers: make(map[string]core.Texture, len(cmd.Samplers)),
		Scissor:  d.scissor,
	}
	if ms != nil {
		dr.Vertices = append([]float32(nil), ms.verts...)
		dr.Indices = append([]uint32(nil), ms.inds...)
	}
	for k, v := range cmd.Uniforms {
		dr.Uniforms[k] = v
	}
	for k, v := range cmd.Samplers {
		dr.Samplers[k] = v
	}
	d.Draws = append(d.Draws, dr)
}

func (d *Device) SetScissor(enabled bool, x, y, w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !enabled {
		d.scissor = nil
		return
	}
	d.scissor = &[4]int{x, y, w, h}
}

func (d *Device) GPUVendor() string   { return "gfxtest" }
func (d *Device) GPURenderer() string { return "recorder" }
func (d *Device) GPUVersion() string  { return "0" }

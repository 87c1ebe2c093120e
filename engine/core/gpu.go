package core

// Device is a Renderer that can also create GPU resources. renderer2d and
// the UI draw backend build on it.
type Device interface {
	Renderer
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)
	SetScissor(enabled bool, x, y, w, h int)
	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

// Pipeline, Texture and Mesh are opaque handles owned by a Device.
// Handles are comparable; equal handles name the same GPU object.
type Pipeline interface{ ID() uint32 }

type Texture interface {
	ID() uint32
	Size() (w, h int)
}

type Mesh interface{ ID() uint32 }

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte
	MinFilter     string // "nearest" | "linear"
	MagFilter     string
	WrapU, WrapV  string // "clamp" | "repeat"
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// DrawCmd draws the mesh's current index range with pipe.
// Uniform values may be float32, int32, [2]float32, [4]float32 or [16]float32.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture
}

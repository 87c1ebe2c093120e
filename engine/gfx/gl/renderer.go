package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/grove/engine/core"
)

// RendererGL implements core.Device on an OpenGL 3.3 core context. The
// window must have made its context current before NewRendererGL.
type RendererGL struct {
	win core.Window
	log *core.Logger

	pipelines map[uint32]*pipeline
	bound     uint32
}

type pipeline struct {
	id        uint32
	depthTest bool
	blend     bool
	uniforms  map[string]int32
}

func (p *pipeline) ID() uint32 { return p.id }

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) ID() uint32       { return t.id }
func (t *texture) Size() (int, int) { return t.w, t.h }

type mesh struct {
	vao, vbo, ebo uint32
	vcap, icap    int
	count         int32
}

func (m *mesh) ID() uint32 { return m.vao }

func NewRendererGL(win core.Window, _ core.Config, log *core.Logger) (*RendererGL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	r := &RendererGL{win: win, log: log, pipelines: make(map[uint32]*pipeline)}
	log.Infof("GL: %s (%s)", r.GPUVersion(), r.GPURenderer())
	return r, nil
}

func (r *RendererGL) Shutdown() {
	for id := range r.pipelines {
		gl.DeleteProgram(id)
	}
	r.pipelines = nil
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(nulTerminated(desc.VertexSource), nulTerminated(desc.FragmentSource))
	if err != nil {
		return nil, err
	}
	p := &pipeline{id: prog, depthTest: desc.DepthTest, blend: desc.Blend, uniforms: make(map[string]int32)}
	r.pipelines[prog] = p
	return p, nil
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("texture format %d not supported", desc.Format)
	}
	if len(desc.Pixels) != desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("texture %dx%d: got %d bytes of pixels", desc.Width, desc.Height, len(desc.Pixels))
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(desc.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return &texture{id: id, w: desc.Width, h: desc.Height}, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if len(desc.Vertices) == 0 || len(desc.Indices) == 0 {
		return nil, fmt.Errorf("mesh needs vertices and indices")
	}
	m := &mesh{vcap: len(desc.Vertices), icap: len(desc.Indices)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.DYNAMIC_DRAW)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, desc.Layout.Stride, unsafe.Pointer(uintptr(a.Offset)))
	}
	gl.BindVertexArray(0)
	m.count = int32(len(desc.Indices))
	return m, nil
}

func (r *RendererGL) UpdateMesh(h core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := h.(*mesh)
	if !ok {
		return fmt.Errorf("mesh %T not created by this device", h)
	}
	if len(vertices) > m.vcap || len(indices) > m.icap {
		return fmt.Errorf("mesh update %d/%d exceeds capacity %d/%d", len(vertices), len(indices), m.vcap, m.icap)
	}
	if len(vertices) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}
	if len(indices) > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	}
	m.count = int32(len(indices))
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		r.log.Errorf("gl: draw with foreign pipeline %T", cmd.Pipe)
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok || m.count == 0 {
		return
	}
	if r.bound != p.id {
		gl.UseProgram(p.id)
		r.bound = p.id
	}
	setCap(gl.DEPTH_TEST, p.depthTest)
	setCap(gl.BLEND, p.blend)
	if p.blend {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	unit := int32(0)
	for name, t := range cmd.Samplers {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.ID())
		gl.Uniform1i(p.location(name), unit)
		unit++
	}
	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		switch v := v.(type) {
		case float32:
			gl.Uniform1f(loc, v)
		case int32:
			gl.Uniform1i(loc, v)
		case [2]float32:
			gl.Uniform2f(loc, v[0], v[1])
		case [4]float32:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		default:
			r.log.Errorf("gl: uniform %s has unsupported type %T", name, v)
		}
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// SetScissor clips later draws to a framebuffer rect with a top-left origin.
func (r *RendererGL) SetScissor(enabled bool, x, y, w, h int) {
	if !enabled {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	_, fh := r.win.FramebufferSize()
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), int32(fh-y-h), int32(w), int32(h))
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func filter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func nulTerminated(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}

package scene

import "math"

// OrthoCamera2D is an orthographic camera with position, rotation and zoom.
// The view-projection matrix is rebuilt lazily after a change.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	X, Y                     float32
	RotationRad              float32
	Zoom                     float32 // 1 = no zoom
	YDown                    bool    // positive Y points down the screen
	screen                   bool    // origin pinned to the top-left corner
	vp                       mat4
	dirty                    bool
}

// NewOrtho2D returns a camera centered on the origin with Y up.
func NewOrtho2D(width, height int) *OrthoCamera2D {
	return newCamera(width, height, false)
}

// NewScreen2D returns a camera mapping framebuffer pixels with a top-left
// origin and Y down, the space UI draw data uses.
func NewScreen2D(width, height int) *OrthoCamera2D {
	return newCamera(width, height, true)
}

func newCamera(width, height int, screen bool) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1, Zoom: 1, YDown: screen, screen: screen}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

// SetViewportPixels resizes the visible area. Screen cameras keep their
// origin at the top-left corner.
func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	hw, hh := float32(w)*0.5, float32(h)*0.5
	c.Left, c.Right = -hw, hw
	c.Bottom, c.Top = -hh, hh
	if c.YDown {
		c.Bottom, c.Top = hh, -hh
	}
	if c.screen {
		c.X, c.Y = hw, hh
	}
	c.dirty = true
}

// Width and Height report the visible extent in world units.
func (c *OrthoCamera2D) Width() float32  { return (c.Right - c.Left) / c.Zoom }
func (c *OrthoCamera2D) Height() float32 { return float32(math.Abs(float64(c.Top-c.Bottom))) / c.Zoom }

func (c *OrthoCamera2D) SetPosition(x, y float32) { c.X, c.Y = x, y; c.dirty = true }
func (c *OrthoCamera2D) Move(dx, dy float32)      { c.X += dx; c.Y += dy; c.dirty = true }
func (c *OrthoCamera2D) Rotate(dRad float32)      { c.RotationRad += dRad; c.dirty = true }

// SetZoom clamps z to at least 0.05.
func (c *OrthoCamera2D) SetZoom(z float32) {
	c.Zoom = max(z, 0.05)
	c.dirty = true
}

// VP returns the column-major view-projection matrix.
func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	z := c.Zoom
	proj := ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)
	// view = R(-rot) · T(-pos)
	view := mul(rotateZ(-c.RotationRad), translate(-c.X, -c.Y))
	c.vp = mul(proj, view)
	c.dirty = false
}

// Project maps a world point to normalized device coordinates.
func (c *OrthoCamera2D) Project(x, y float32) (float32, float32) {
	m := c.VP()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// mat4 is column-major, as GLSL expects.
type mat4 = [16]float32

func translate(x, y float32) mat4 {
	m := identity()
	m[12], m[13] = x, y
	return m
}

func rotateZ(a float32) mat4 {
	s64, c64 := math.Sincos(float64(a))
	s, c := float32(s64), float32(c64)
	m := identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

func ortho(l, r, b, t, n, f float32) mat4 {
	var m mat4
	m[0] = 2 / (r - l)
	m[5] = 2 / (t - b)
	m[10] = -2 / (f - n)
	m[12] = -(r + l) / (r - l)
	m[13] = -(t + b) / (t - b)
	m[14] = -(f + n) / (f - n)
	m[15] = 1
	return m
}

func identity() mat4 { return mat4{0: 1, 5: 1, 10: 1, 15: 1} }

// mul returns a·b.
func mul(a, b mat4) mat4 {
	var out mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[row+4*k] * b[k+4*col]
			}
			out[row+4*col] = sum
		}
	}
	return out
}

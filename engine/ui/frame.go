package ui

// Frame is the build interface of one frame. It is valid from
// Context.NewFrame until Context.Render; afterwards every call is a no-op.
type Frame struct {
	c    *Context
	seq  uint64
	done bool
}

func (f *Frame) live() bool { return f != nil && !f.done && f.c.frame == f }

// Live reports whether the frame can still be built.
func (f *Frame) Live() bool { return f.live() }

// Seq is the frame number the handle builds.
func (f *Frame) Seq() uint64 {
	if f == nil {
		return 0
	}
	return f.seq
}

// DisplaySize returns the logical display size.
func (f *Frame) DisplaySize() (float32, float32) {
	if !f.live() {
		return 0, 0
	}
	return f.c.io.DisplaySize[0], f.c.io.DisplaySize[1]
}

// MousePos returns the cursor in logical pixels.
func (f *Frame) MousePos() (float32, float32) {
	if !f.live() {
		return 0, 0
	}
	return f.c.io.MousePos[0], f.c.io.MousePos[1]
}

// SetNextFrameWantCaptureMouse forces the mouse capture claim for the next
// input phase.
func (f *Frame) SetNextFrameWantCaptureMouse(v bool) {
	if f.live() {
		f.c.reqMouse = toTristate(v)
	}
}

// SetNextFrameWantCaptureKeyboard forces the keyboard capture claim for the
// next input phase.
func (f *Frame) SetNextFrameWantCaptureKeyboard(v bool) {
	if f.live() {
		f.c.reqKeyboard = toTristate(v)
	}
}

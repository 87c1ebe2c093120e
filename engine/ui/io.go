package ui

// Key is a key the UI reacts to. Platform layers map their keys onto these.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyDelete
	KeyCtrl
	KeyShift
	KeyAlt
	KeySuper
	keyCount
)

// MouseButtonCount is the number of mouse buttons the UI tracks.
const MouseButtonCount = 5

// CaptureFlags is the UI's claim on mouse and keyboard input.
type CaptureFlags struct {
	WantMouse    bool
	WantKeyboard bool
}

// IO is the input model of a Context. The platform layer writes to it
// during the input phase; the Context reads it when a frame starts.
type IO struct {
	DisplaySize      [2]float32
	FramebufferScale [2]float32
	DeltaTime        float32
	ConfigFlags      ConfigFlags

	MousePos   [2]float32
	MouseDown  [MouseButtonCount]bool
	MouseWheel [2]float32 // horizontal, vertical
	KeyCtrl    bool
	KeyShift   bool
	KeyAlt     bool
	KeySuper   bool
	InputChars []rune

	// Recomputed by Context.UpdateCapture.
	WantCaptureMouse    bool
	WantCaptureKeyboard bool

	keysDown      [keyCount]bool
	keysPressed   [keyCount]bool
	mouseClicked  [MouseButtonCount]bool
	mouseReleased [MouseButtonCount]bool
	hasMouse      bool
}

func (io *IO) AddMousePos(x, y float32) {
	io.MousePos = [2]float32{x, y}
	io.hasMouse = true
}

// AddMouseLeave marks the cursor as outside the display.
func (io *IO) AddMouseLeave() {
	io.MousePos = [2]float32{-1e9, -1e9}
	io.hasMouse = false
}

func (io *IO) AddMouseButton(b int, down bool) {
	if b < 0 || b >= MouseButtonCount {
		return
	}
	if down && !io.MouseDown[b] {
		io.mouseClicked[b] = true
	}
	if !down && io.MouseDown[b] {
		io.mouseReleased[b] = true
	}
	io.MouseDown[b] = down
}

func (io *IO) AddMouseWheel(h, v float32) {
	io.MouseWheel[0] += h
	io.MouseWheel[1] += v
}

func (io *IO) AddKey(k Key, down bool) {
	if k <= KeyNone || k >= keyCount {
		return
	}
	if down {
		io.keysPressed[k] = true
	}
	io.keysDown[k] = down
	switch k {
	case KeyCtrl:
		io.KeyCtrl = down
	case KeyShift:
		io.KeyShift = down
	case KeyAlt:
		io.KeyAlt = down
	case KeySuper:
		io.KeySuper = down
	}
}

func (io *IO) AddChar(r rune) {
	if r < 0x20 || r == 0x7f {
		return
	}
	io.InputChars = append(io.InputChars, r)
}

// ClearInput releases every held key and button, as on focus loss.
func (io *IO) ClearInput() {
	for b := range io.MouseDown {
		io.AddMouseButton(b, false)
	}
	io.keysDown = [keyCount]bool{}
	io.KeyCtrl, io.KeyShift, io.KeyAlt, io.KeySuper = false, false, false, false
	io.InputChars = io.InputChars[:0]
}

func (io *IO) IsKeyDown(k Key) bool { return k > KeyNone && k < keyCount && io.keysDown[k] }

// CaptureFlags snapshots the capture claim computed by the last UpdateCapture.
func (io *IO) CaptureFlags() CaptureFlags {
	return CaptureFlags{WantMouse: io.WantCaptureMouse, WantKeyboard: io.WantCaptureKeyboard}
}

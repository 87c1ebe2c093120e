package overlay

import (
	"fmt"
	"math"
	"time"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

// HiDpiMode selects the scale factor between framebuffer pixels and UI
// units.
type HiDpiMode int

const (
	// HiDpiDefault follows the window's content scale.
	HiDpiDefault HiDpiMode = iota
	// HiDpiRounded rounds the content scale to a whole number.
	HiDpiRounded
	// HiDpiLocked uses a fixed factor regardless of the monitor.
	HiDpiLocked
)

var hiDpiNames = []string{"default", "rounded", "locked"}

func (m HiDpiMode) String() string {
	if int(m) < len(hiDpiNames) {
		return hiDpiNames[m]
	}
	return fmt.Sprintf("HiDpiMode(%d)", int(m))
}

// Platform feeds window events into a ui.IO. It owns a reader on the
// platform event channel.
type Platform struct {
	win    core.Window
	events *core.EventChannel[core.Event]
	reader core.ReaderID

	mode   HiDpiMode
	locked float32

	factor      [2]float32
	cursorScale [2]float32
	last        time.Time
	attached    bool
}

// NewPlatform registers a reader on events. locked is the factor used by
// HiDpiLocked.
func NewPlatform(win core.Window, events *core.EventChannel[core.Event], mode HiDpiMode, locked float32) *Platform {
	if locked <= 0 {
		locked = 1
	}
	return &Platform{
		win:    win,
		events: events,
		reader: events.Register(),
		mode:   mode,
		locked: locked,
	}
}

// Attach initializes io from the current window state.
func (p *Platform) Attach(io *ui.IO) {
	p.refresh(io)
	p.last = time.Now()
	p.attached = true
}

// Detach releases the event reader. Feed is a no-op afterwards.
func (p *Platform) Detach() {
	if !p.attached {
		return
	}
	p.events.Unregister(p.reader)
	p.attached = false
}

// Scale returns the current UI scale factor.
func (p *Platform) Scale() (float32, float32) { return p.factor[0], p.factor[1] }

// Feed drains pending platform events into io and advances DeltaTime. It
// is called once per frame and returns the number of events consumed.
func (p *Platform) Feed(io *ui.IO) int {
	if !p.attached {
		return 0
	}
	now := time.Now()
	io.DeltaTime = float32(now.Sub(p.last).Seconds())
	p.last = now

	evs := p.events.Read(p.reader)
	for _, ev := range evs {
		switch ev := ev.(type) {
		case core.EventResize, core.EventScaleChanged:
			p.refresh(io)
		case core.EventFocus:
			if !ev.Focused {
				io.ClearInput()
				io.AddMouseLeave()
			}
		case core.EventKey:
			if k, ok := keyMap[ev.Key]; ok {
				io.AddKey(k, ev.Down)
			}
		case core.EventChar:
			io.AddChar(ev.Rune)
		case core.EventMouseMove:
			io.AddMousePos(float32(ev.X)*p.cursorScale[0], float32(ev.Y)*p.cursorScale[1])
		case core.EventMouseButton:
			io.AddMouseButton(int(ev.Button), ev.Down)
		case core.EventScroll:
			io.AddMouseWheel(float32(ev.Xoff), float32(ev.Yoff))
		}
	}
	return len(evs)
}

func (p *Platform) scaleFactor() (float32, float32) {
	switch p.mode {
	case HiDpiLocked:
		return p.locked, p.locked
	case HiDpiRounded:
		x, y := p.win.ContentScale()
		return roundScale(x), roundScale(y)
	default:
		x, y := p.win.ContentScale()
		if x <= 0 || y <= 0 {
			return 1, 1
		}
		return x, y
	}
}

func roundScale(v float32) float32 {
	return float32(math.Max(1, math.Round(float64(v))))
}

// refresh derives display size, framebuffer scale and the cursor mapping
// from the window. Cursor positions arrive in window coordinates.
func (p *Platform) refresh(io *ui.IO) {
	fx, fy := p.scaleFactor()
	p.factor = [2]float32{fx, fy}
	fw, fh := p.win.FramebufferSize()
	ww, wh := p.win.WindowSize()

	io.DisplaySize = [2]float32{float32(fw) / fx, float32(fh) / fy}
	io.FramebufferScale = p.factor
	p.cursorScale = [2]float32{1 / fx, 1 / fy}
	if ww > 0 && wh > 0 {
		p.cursorScale[0] = float32(fw) / float32(ww) / fx
		p.cursorScale[1] = float32(fh) / float32(wh) / fy
	}
}

var keyMap = map[core.Key]ui.Key{
	core.KeyTab:          ui.KeyTab,
	core.KeyLeft:         ui.KeyLeft,
	core.KeyRight:        ui.KeyRight,
	core.KeyUp:           ui.KeyUp,
	core.KeyDown:         ui.KeyDown,
	core.KeyHome:         ui.KeyHome,
	core.KeyEnd:          ui.KeyEnd,
	core.KeyEnter:        ui.KeyEnter,
	core.KeyEscape:       ui.KeyEscape,
	core.KeySpace:        ui.KeySpace,
	core.KeyBackspace:    ui.KeyBackspace,
	core.KeyDelete:       ui.KeyDelete,
	core.KeyLeftControl:  ui.KeyCtrl,
	core.KeyRightControl: ui.KeyCtrl,
	core.KeyLeftShift:    ui.KeyShift,
	core.KeyRightShift:   ui.KeyShift,
	core.KeyLeftAlt:      ui.KeyAlt,
	core.KeyRightAlt:     ui.KeyAlt,
}

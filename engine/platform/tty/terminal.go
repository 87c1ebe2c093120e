// Package tty runs the engine on a character terminal through tcell.
//
// Every cell stands for a CellW by CellH block of framebuffer pixels, so
// the UI, the input layer and the overlay capture work in the same units as
// on a GPU window. Terminals report presses only; a key press is delivered
// as a down event immediately followed by an up event.
package tty

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
)

const (
	CellW = 8
	CellH = 16

	// DefaultFrameRate caps presents; terminals have no vsync.
	DefaultFrameRate = 30
)

// CellMetrics measures text in cells. Size is ignored: a terminal has one
// font size.
type CellMetrics struct{}

func (CellMetrics) Measure(text string, _ float32) (float32, float32) {
	return float32(runewidth.StringWidth(text) * CellW), CellH
}

// Terminal is a core.Window and core.Renderer backed by a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once

	cb         func(core.Event)
	closed     bool
	cols, rows int
	buttons    tcell.ButtonMask
	mouse      [2]int
	hasMouse   bool
	interval   time.Duration
	next       time.Time
}

// New opens the controlling terminal.
func New(cfg core.Config) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tty: %w", err)
	}
	return Open(s, cfg)
}

// Open initializes s and starts reading its events. The Terminal owns s
// from here on; Shutdown finalizes it.
func Open(s tcell.Screen, cfg core.Config) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tty: init screen: %w", err)
	}
	s.EnableMouse()
	s.EnableFocus()
	if cfg.Title != "" {
		s.SetTitle(cfg.Title)
	}
	t := &Terminal{
		screen:   s,
		events:   make(chan tcell.Event, 256),
		quit:     make(chan struct{}),
		interval: time.Second / DefaultFrameRate,
	}
	t.cols, t.rows = s.Size()
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Sink returns an overlay sink drawing into this terminal.
func (t *Terminal) Sink() *Sink { return NewSink(t.screen) }

func (t *Terminal) PollEvents() {
	for {
		select {
		case ev := <-t.events:
			t.translate(ev)
		default:
			return
		}
	}
}

// SetFrameRate caps how often SwapBuffers presents. Zero removes the cap.
func (t *Terminal) SetFrameRate(hz int) {
	t.interval = 0
	if hz > 0 {
		t.interval = time.Second / time.Duration(hz)
	}
}

// SwapBuffers presents the screen, then sleeps out the rest of the frame.
func (t *Terminal) SwapBuffers() {
	t.screen.Show()
	if t.interval <= 0 {
		return
	}
	now := time.Now()
	if t.next.After(now) {
		time.Sleep(t.next.Sub(now))
		now = t.next
	}
	t.next = now.Add(t.interval)
}

func (t *Terminal) ShouldClose() bool                    { return t.closed }
func (t *Terminal) RequestClose()                        { t.closed = true }
func (t *Terminal) FramebufferSize() (int, int)          { return t.cols * CellW, t.rows * CellH }
func (t *Terminal) WindowSize() (int, int)               { return t.FramebufferSize() }
func (t *Terminal) ContentScale() (float32, float32)     { return 1, 1 }
func (t *Terminal) SetTitle(title string)                { t.screen.SetTitle(title) }
func (t *Terminal) SetEventCallback(cb func(core.Event)) { t.cb = cb }

// Resize is a no-op: the screen tracks the terminal size itself.
func (t *Terminal) Resize(int, int) {}

// Clear fills the screen with blanks on the given background.
func (t *Terminal) Clear(r, g, b, a float32) {
	t.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(colors.Color{r, g, b, a})))
}

// Shutdown restores the terminal. It is safe to call more than once.
func (t *Terminal) Shutdown() {
	t.once.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
}

func (t *Terminal) emit(ev core.Event) {
	if t.cb != nil {
		t.cb(ev)
	}
}

func (t *Terminal) translate(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		t.cols, t.rows = e.Size()
		t.screen.Sync()
		t.emit(core.EventResize{W: t.cols * CellW, H: t.rows * CellH})
	case *tcell.EventFocus:
		t.emit(core.EventFocus{Focused: e.Focused})
	case *tcell.EventKey:
		t.key(e)
	case *tcell.EventMouse:
		t.mouseEvent(e)
	}
}

func (t *Terminal) key(e *tcell.EventKey) {
	k, r := translateKey(e)
	mods := translateMods(e.Modifiers())
	if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ && k >= core.KeyA && k <= core.KeyZ {
		mods |= core.ModCtrl
	}
	if k != core.KeyUnknown {
		t.emit(core.EventKey{Key: k, Down: true, Mods: mods})
	}
	if r != 0 && mods&(core.ModCtrl|core.ModAlt) == 0 {
		t.emit(core.EventChar{Rune: r})
	}
	if k != core.KeyUnknown {
		t.emit(core.EventKey{Key: k, Mods: mods})
	}
	if k == core.KeyC && mods&core.ModCtrl != 0 {
		t.closed = true
		t.emit(core.EventCloseRequested{})
	}
}

var buttonMap = [...]struct {
	mask tcell.ButtonMask
	btn  core.MouseButton
}{
	{tcell.ButtonPrimary, core.MouseLeft},
	{tcell.ButtonSecondary, core.MouseRight},
	{tcell.ButtonMiddle, core.MouseMiddle},
}

func (t *Terminal) mouseEvent(e *tcell.EventMouse) {
	x, y := e.Position()
	mods := translateMods(e.Modifiers())
	if !t.hasMouse || t.mouse != [2]int{x, y} {
		t.hasMouse = true
		t.mouse = [2]int{x, y}
		t.emit(core.EventMouseMove{X: float64(x*CellW + CellW/2), Y: float64(y*CellH + CellH/2)})
	}

	btns := e.Buttons()
	for _, m := range buttonMap {
		was, now := t.buttons&m.mask != 0, btns&m.mask != 0
		if was != now {
			t.emit(core.EventMouseButton{Button: m.btn, Down: now, Mods: mods})
		}
	}
	t.buttons = btns & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	switch {
	case btns&tcell.WheelUp != 0:
		t.emit(core.EventScroll{Yoff: 1})
	case btns&tcell.WheelDown != 0:
		t.emit(core.EventScroll{Yoff: -1})
	case btns&tcell.WheelLeft != 0:
		t.emit(core.EventScroll{Xoff: -1})
	case btns&tcell.WheelRight != 0:
		t.emit(core.EventScroll{Xoff: 1})
	}
}

var keys = map[tcell.Key]core.Key{
	tcell.KeyEnter:      core.KeyEnter,
	tcell.KeyTab:        core.KeyTab,
	tcell.KeyBackspace:  core.KeyBackspace,
	tcell.KeyBackspace2: core.KeyBackspace,
	tcell.KeyDelete:     core.KeyDelete,
	tcell.KeyEscape:     core.KeyEscape,
	tcell.KeyLeft:       core.KeyLeft,
	tcell.KeyRight:      core.KeyRight,
	tcell.KeyUp:         core.KeyUp,
	tcell.KeyDown:       core.KeyDown,
	tcell.KeyHome:       core.KeyHome,
	tcell.KeyEnd:        core.KeyEnd,
	tcell.KeyPgUp:       core.KeyPageUp,
	tcell.KeyPgDn:       core.KeyPageDown,
	tcell.KeyF1:         core.KeyF1,
	tcell.KeyF2:         core.KeyF2,
	tcell.KeyF3:         core.KeyF3,
	tcell.KeyF4:         core.KeyF4,
}

// translateKey returns the engine key and, for printable input, the rune.
func translateKey(e *tcell.EventKey) (core.Key, rune) {
	if e.Key() == tcell.KeyRune {
		return core.KeyFromRune(e.Rune()), e.Rune()
	}
	if k, ok := keys[e.Key()]; ok {
		return k, 0
	}
	if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
		return core.KeyA + core.Key(e.Key()-tcell.KeyCtrlA), 0
	}
	return core.KeyUnknown, 0
}

func translateMods(m tcell.ModMask) core.Mod {
	var out core.Mod
	if m&tcell.ModShift != 0 {
		out |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= core.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= core.ModSuper
	}
	return out
}

func toTcell(c colors.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func fromTcell(c tcell.Color) colors.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colors.Black
	}
	return colors.Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

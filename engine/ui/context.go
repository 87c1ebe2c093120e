package ui

import (
	"github.com/hubastard/grove/engine/scratch"
	"github.com/mattn/go-runewidth"
)

// ConfigFlags are feature switches fixed at context creation.
type ConfigFlags uint32

const (
	ConfigNavEnableKeyboard ConfigFlags = 1 << iota
	ConfigDockingEnable
	ConfigNoMouseCursorChange
)

// FontMetrics measures text for layout.
type FontMetrics interface {
	Measure(text string, size float32) (w, h float32)
}

// MonoMetrics measures text as a fixed-pitch font, half as wide as tall.
type MonoMetrics struct{}

func (MonoMetrics) Measure(text string, size float32) (float32, float32) {
	return float32(runewidth.StringWidth(text)) * size * 0.5, size
}

type Options struct {
	Fonts    FontMetrics
	FontSize float32
	Flags    ConfigFlags
	Style    *Style

	// Fixed capacities reused every frame; zero picks a default.
	CapViews int
	CapCmds  int
	CapItems int
}

// Context is the immediate-mode UI state: input model, persistent widget
// state and the per-frame command buffers. It is not safe for concurrent
// use; the host serializes access.
type Context struct {
	io    IO
	style Style
	fonts FontMetrics
	arena *scratch.Arena

	// Fixed-capacity stacks & buffers reused every frame
	viewStack []viewScope // layout scopes
	cmds      []cmd       // widget records (deferred)
	items     []item      // transient per-view child list (reused)
	dropped   int
	overflow  int // BeginView calls past the view cap awaiting their EndView

	// Stable widget state (hot/active); no per-frame inserts after bootstrap
	state    map[ID]widgetState
	activeID ID
	focusID  ID

	// frame bookkeeping
	frame      *Frame
	frameCount uint64
	chars      []rune
	keys       [keyCount]bool
	clicked    [MouseButtonCount]bool
	released   [MouseButtonCount]bool
	wheel      [2]float32

	// capture bookkeeping
	hitRects    []rect // top-level views of the last finalized frame
	curRects    []rect
	mouseOwned  [MouseButtonCount]bool
	ownerKnown  [MouseButtonCount]bool
	reqMouse    tristate
	reqKeyboard tristate
	ovMouse     tristate
	ovKeyboard  tristate

	drawData *DrawData
}

type tristate int8

const (
	unset tristate = iota
	setFalse
	setTrue
)

func toTristate(v bool) tristate {
	if v {
		return setTrue
	}
	return setFalse
}

type rect struct{ x, y, w, h float32 }

func (r rect) contains(x, y float32) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

func NewContext(opts Options) *Context {
	if opts.CapViews <= 0 {
		opts.CapViews = 32
	}
	if opts.CapCmds <= 0 {
		opts.CapCmds = 4096
	}
	if opts.CapItems <= 0 {
		opts.CapItems = 1024
	}
	if opts.Fonts == nil {
		opts.Fonts = MonoMetrics{}
	}
	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}
	if opts.FontSize > 0 {
		style.FontSize = opts.FontSize
	}
	c := &Context{
		style:     style,
		fonts:     opts.Fonts,
		arena:     scratch.New(1024),
		viewStack: make([]viewScope, 0, opts.CapViews),
		cmds:      make([]cmd, 0, opts.CapCmds),
		items:     make([]item, 0, opts.CapItems),
		state:     make(map[ID]widgetState, 256), // fills once, then steady
	}
	c.io.ConfigFlags = opts.Flags
	c.io.FramebufferScale = [2]float32{1, 1}
	return c
}

func (c *Context) IO() *IO       { return &c.io }
func (c *Context) Style() *Style { return &c.style }

// SetFonts replaces the metrics used for layout.
func (c *Context) SetFonts(f FontMetrics) {
	if f == nil {
		f = MonoMetrics{}
	}
	c.fonts = f
}

// FrameCount reports how many frames have been finalized.
func (c *Context) FrameCount() uint64 { return c.frameCount }

// DrawData returns the output of the last finalized frame, or nil.
func (c *Context) DrawData() *DrawData { return c.drawData }

// Frame returns the frame being built, or nil.
func (c *Context) Frame() *Frame { return c.frame }

// UpdateCapture recomputes IO.WantCaptureMouse and IO.WantCaptureKeyboard
// from the accumulated input and the last finalized frame.
func (c *Context) UpdateCapture() {
	io := &c.io
	hovered := io.hasMouse && c.hovered(io.MousePos[0], io.MousePos[1])

	anyOwnedDown, anyDown := false, false
	for b := range io.MouseDown {
		if !io.MouseDown[b] {
			c.ownerKnown[b] = false
			c.mouseOwned[b] = false
			continue
		}
		anyDown = true
		if !c.ownerKnown[b] {
			c.ownerKnown[b] = true
			c.mouseOwned[b] = hovered
		}
		if c.mouseOwned[b] {
			anyOwnedDown = true
		}
	}

	wantMouse := anyOwnedDown || c.activeID != 0 || (hovered && !anyDown)
	wantKeyboard := c.focusID != 0 ||
		(io.ConfigFlags&ConfigNavEnableKeyboard != 0 && hovered)

	if c.ovMouse != unset {
		wantMouse = c.ovMouse == setTrue
	}
	if c.ovKeyboard != unset {
		wantKeyboard = c.ovKeyboard == setTrue
	}
	io.WantCaptureMouse = wantMouse
	io.WantCaptureKeyboard = wantKeyboard
}

func (c *Context) hovered(x, y float32) bool {
	for _, r := range c.hitRects {
		if r.contains(x, y) {
			return true
		}
	}
	return false
}

// NewFrame starts the build phase and returns its handle. The accumulated
// input is consumed. A frame still open from before is discarded.
func (c *Context) NewFrame() *Frame {
	if c.frame != nil {
		c.frame.done = true
		c.frame = nil
	}
	io := &c.io

	c.clicked, io.mouseClicked = io.mouseClicked, [MouseButtonCount]bool{}
	c.released, io.mouseReleased = io.mouseReleased, [MouseButtonCount]bool{}
	c.keys, io.keysPressed = io.keysPressed, [keyCount]bool{}
	c.wheel, io.MouseWheel = io.MouseWheel, [2]float32{}
	c.chars = append(c.chars[:0], io.InputChars...)
	io.InputChars = io.InputChars[:0]

	c.cmds = c.cmds[:0]
	c.viewStack = c.viewStack[:0]
	c.items = c.items[:0]
	c.curRects = c.curRects[:0]
	c.dropped = 0
	c.overflow = 0
	c.arena.Reset()

	c.frame = &Frame{c: c, seq: c.frameCount + 1}
	c.frame.BeginView(Props{
		Name:    "##root",
		Axis:    Vertical,
		Gap:     c.style.ItemSpacing,
		Padding: Insets(c.style.WindowPadding, c.style.WindowPadding, c.style.WindowPadding, c.style.WindowPadding),
		BoundsX: 0,
		BoundsY: 0,
	})
	return c.frame
}

// Render finalizes the frame being built: closes open views, resolves
// widget interaction and produces the draw data. The frame handle becomes
// inert. Without an open frame it returns the previous draw data.
func (c *Context) Render() *DrawData {
	f := c.frame
	if f == nil {
		return c.drawData
	}
	c.overflow = 0
	for len(c.viewStack) > 0 {
		f.EndView()
	}
	f.done = true
	c.frame = nil

	for i := range c.cmds {
		c.resolve(&c.cmds[i])
	}
	if c.released[0] {
		c.activeID = 0
	}
	c.forget(f.seq)

	dd := &DrawData{
		Frame:            f.seq,
		DisplaySize:      c.io.DisplaySize,
		FramebufferScale: c.io.FramebufferScale,
		Cmds:             make([]DrawCmd, 0, len(c.cmds)+len(c.cmds)/2),
		Dropped:          c.dropped,
	}
	for i := range c.cmds {
		dd.Cmds = c.appendDraw(dd.Cmds, &c.cmds[i])
	}

	c.hitRects, c.curRects = c.curRects, c.hitRects
	c.ovMouse, c.reqMouse = c.reqMouse, unset
	c.ovKeyboard, c.reqKeyboard = c.reqKeyboard, unset
	c.frameCount = f.seq
	c.drawData = dd
	return dd
}

func (c *Context) measure(text string, size float32) (float32, float32) {
	if size <= 0 {
		size = c.style.FontSize
	}
	return c.fonts.Measure(text, size)
}

package ui

import "github.com/hubastard/grove/engine/colors"

// ===== Sizing & layout props =====

type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

type Align int

const (
	Start Align = iota
	Center
	End
	Stretch
)

type SizeMode int

const (
	SizeFit SizeMode = iota
	SizeFixed
	SizeExpand
)

type Sizing struct {
	WMode SizeMode
	HMode SizeMode
	WVal  float32 // for SizeFixed
	HVal  float32 // for SizeFixed
}

func Fit() Sizing            { return Sizing{WMode: SizeFit, HMode: SizeFit} }
func Expand() Sizing         { return Sizing{WMode: SizeExpand, HMode: SizeExpand} }
func Px(w, h float32) Sizing { return Sizing{WMode: SizeFixed, HMode: SizeFixed, WVal: w, HVal: h} }

type Insets4 struct{ L, T, R, B float32 }

func Insets(l, t, r, b float32) Insets4 { return Insets4{l, t, r, b} }

// Props describe a view. Views opened directly in the frame are windows
// placed at BoundsX/BoundsY; views opened inside another window are placed
// by their parent.
type Props struct {
	Name       string // seeds widget IDs; "##" hides the visible part
	Axis       Axis
	MainAlign  Align
	CrossAlign Align
	Sizing     Sizing
	Gap        float32
	Padding    Insets4
	Bg         colors.Color
	// NoInputs keeps the view out of hit testing, so it never claims the mouse.
	NoInputs bool

	BoundsX float32
	BoundsY float32
	// Size used by SizeExpand; zero extends to the display edge.
	BoundsW float32
	BoundsH float32
}

// ===== Internal structs =====

type viewScope struct {
	props     Props
	id        ID
	firstCmd  int // index in ctx.cmds where the view's commands begin
	bgCmd     int // background command index, or -1
	firstItem int // index in ctx.items

	// content box
	x, y, w, h float32
}

type itemKind uint8

const (
	itemWidget itemKind = iota
	itemView
	itemRule // stretches along the cross axis
)

type item struct {
	kind   itemKind
	iCmd   int // widget command, or first command of a view
	endCmd int // one past the last command of a view
	w, h   float32
}

type cmdKind uint8

const (
	cmdBgQuad cmdKind = iota
	cmdLabel
	cmdButton
	cmdCheckbox
	cmdInputText
	cmdImage
	cmdSeparator
)

func (k cmdKind) interactive() bool {
	return k == cmdButton || k == cmdCheckbox || k == cmdInputText
}

type cmd struct {
	kind cmdKind
	id   ID

	// geom (resolved at EndView)
	x, y, w, h float32

	// visuals
	text     string
	fontSize float32
	color    colors.Color
	bg       colors.Color
	texture  TextureID
	uv       [4]float32
	checked  bool

	// interaction, resolved at Render
	hot, active, focused bool
}

type widgetState struct {
	hot     bool
	active  bool
	clicked bool
	seen    uint64 // last frame the widget was recorded
}

// ===== Begin/End view =====

// BeginView opens a layout scope. Views nest; every BeginView needs an
// EndView, and views left open are closed by Context.Render.
func (f *Frame) BeginView(p Props) {
	if !f.live() {
		return
	}
	ctx := f.c
	if len(ctx.viewStack) == cap(ctx.viewStack) || ctx.overflow > 0 {
		ctx.dropped++
		ctx.overflow++
		return
	}
	scope := viewScope{
		props:     p,
		id:        HashID(f.seed(), p.Name),
		firstCmd:  len(ctx.cmds),
		firstItem: len(ctx.items),
		bgCmd:     -1,
	}
	if p.Bg[3] > 0 {
		scope.bgCmd = ctx.emit(cmd{kind: cmdBgQuad, bg: p.Bg})
	}
	ctx.viewStack = append(ctx.viewStack, scope)
}

// EndView closes the innermost view and lays out its children.
func (f *Frame) EndView() {
	if f == nil || f.c.frame != f {
		return
	}
	ctx := f.c
	if ctx.overflow > 0 {
		ctx.overflow--
		return
	}
	if len(ctx.viewStack) == 0 {
		return
	}

	scope := ctx.viewStack[len(ctx.viewStack)-1]
	ctx.viewStack = ctx.viewStack[:len(ctx.viewStack)-1]
	// the implicit root is at index 0; views directly under it are windows
	nested := len(ctx.viewStack) > 1
	nItems := len(ctx.items) - scope.firstItem

	// measure total main/cross span
	var totalMain, maxCross float32
	gap := scope.props.Gap
	mainIsX := scope.props.Axis == Horizontal

	for _, it := range ctx.items[scope.firstItem:] {
		if mainIsX {
			totalMain += it.w
			maxCross = maxf(maxCross, it.h)
		} else {
			totalMain += it.h
			maxCross = maxf(maxCross, it.w)
		}
	}
	if nItems > 1 {
		totalMain += gap * float32(nItems-1)
	}

	// nested views are laid out at the origin and moved by their parent
	var originX, originY float32
	if !nested {
		originX, originY = scope.props.BoundsX, scope.props.BoundsY
	}

	pad := scope.props.Padding
	var availW, availH float32
	switch scope.props.Sizing.WMode {
	case SizeFixed:
		availW = scope.props.Sizing.WVal
	case SizeExpand:
		availW = scope.props.BoundsW
		if availW <= 0 {
			availW = maxf(0, ctx.io.DisplaySize[0]-originX)
		}
	default:
		if mainIsX {
			availW = totalMain
		} else {
			availW = maxCross
		}
		availW += pad.L + pad.R
	}
	switch scope.props.Sizing.HMode {
	case SizeFixed:
		availH = scope.props.Sizing.HVal
	case SizeExpand:
		availH = scope.props.BoundsH
		if availH <= 0 {
			availH = maxf(0, ctx.io.DisplaySize[1]-originY)
		}
	default:
		if mainIsX {
			availH = maxCross
		} else {
			availH = totalMain
		}
		availH += pad.T + pad.B
	}

	scope.x = originX + pad.L
	scope.y = originY + pad.T
	scope.w = maxf(0, availW-pad.L-pad.R)
	scope.h = maxf(0, availH-pad.T-pad.B)

	if scope.bgCmd >= 0 {
		c := &ctx.cmds[scope.bgCmd]
		c.x, c.y, c.w, c.h = originX, originY, availW, availH
	}

	free := scope.h - totalMain
	if mainIsX {
		free = scope.w - totalMain
	}
	free = maxf(0, free)
	var cursor float32
	switch scope.props.MainAlign {
	case Center:
		cursor = free * 0.5
	case End:
		cursor = free
	}

	for i, it := range ctx.items[scope.firstItem:] {
		if it.kind == itemRule {
			if mainIsX {
				it.h = scope.h
			} else {
				it.w = scope.w
			}
		}

		var crossPos float32
		switch scope.props.CrossAlign {
		case Center:
			if mainIsX {
				crossPos = (scope.h - it.h) * 0.5
			} else {
				crossPos = (scope.w - it.w) * 0.5
			}
		case End:
			if mainIsX {
				crossPos = scope.h - it.h
			} else {
				crossPos = scope.w - it.w
			}
		case Stretch:
			if it.kind != itemView {
				if mainIsX {
					it.h = scope.h
				} else {
					it.w = scope.w
				}
			}
		}

		var px, py float32
		if mainIsX {
			px, py = scope.x+cursor, scope.y+crossPos
			cursor += it.w
		} else {
			px, py = scope.x+crossPos, scope.y+cursor
			cursor += it.h
		}
		if i != nItems-1 {
			cursor += gap
		}

		if it.kind == itemView {
			for j := it.iCmd; j < it.endCmd; j++ {
				ctx.cmds[j].x += px
				ctx.cmds[j].y += py
			}
			continue
		}
		c := &ctx.cmds[it.iCmd]
		c.x, c.y, c.w, c.h = px, py, it.w, it.h
	}

	ctx.items = ctx.items[:scope.firstItem]

	if nested {
		ctx.addItem(item{kind: itemView, iCmd: scope.firstCmd, endCmd: len(ctx.cmds), w: availW, h: availH})
		return
	}
	if !scope.props.NoInputs && (nItems > 0 || scope.bgCmd >= 0) {
		ctx.curRects = append(ctx.curRects, rect{originX, originY, availW, availH})
	}
}

// seed is the ID of the innermost open view.
func (f *Frame) seed() ID {
	if n := len(f.c.viewStack); n > 0 {
		return f.c.viewStack[n-1].id
	}
	return 0
}

// emit records a command and returns its index, or -1 once the buffer is full.
func (c *Context) emit(cm cmd) int {
	if len(c.cmds) == cap(c.cmds) {
		c.dropped++
		return -1
	}
	c.cmds = append(c.cmds, cm)
	return len(c.cmds) - 1
}

func (c *Context) addItem(it item) {
	if len(c.items) == cap(c.items) {
		c.dropped++
		return
	}
	c.items = append(c.items, it)
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

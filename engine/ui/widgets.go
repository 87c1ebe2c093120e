package ui

import (
	"unicode/utf8"

	"github.com/hubastard/grove/engine/colors"
)

// ===== Label =====

func (f *Frame) Label(text string) { f.LabelColored(text, f.textColor()) }

// Labelf formats into the frame arena; it does not allocate through fmt.
func (f *Frame) Labelf(format string, args ...any) {
	if !f.live() {
		return
	}
	f.Label(f.c.arena.Sprintf(format, args...))
}

func (f *Frame) LabelColored(text string, col colors.Color) {
	if !f.live() {
		return
	}
	ctx := f.c
	text = visibleLabel(text)
	w, h := ctx.measure(text, 0)
	i := ctx.emit(cmd{kind: cmdLabel, text: text, color: col})
	if i >= 0 {
		ctx.addItem(item{iCmd: i, w: w, h: h})
	}
}

func (f *Frame) textColor() colors.Color {
	if f == nil {
		return colors.White
	}
	return f.c.style.Text
}

// ===== Button =====

// Button reports whether the button was clicked. Clicks are resolved when
// the frame is rendered, so the result belongs to the previous frame.
func (f *Frame) Button(label string) bool {
	if !f.live() {
		return false
	}
	ctx := f.c
	id := HashID(f.seed(), label)
	text := visibleLabel(label)
	tw, th := ctx.measure(text, 0)
	pad := ctx.style.FramePadding

	i := ctx.emit(cmd{kind: cmdButton, id: id, text: text, color: ctx.style.Text})
	if i < 0 {
		return false
	}
	ctx.addItem(item{iCmd: i, w: tw + 2*pad[0], h: th + 2*pad[1]})
	return ctx.touch(id).clicked
}

// ===== Checkbox =====

// Checkbox toggles *v when clicked and reports whether it changed.
func (f *Frame) Checkbox(label string, v *bool) bool {
	if !f.live() || v == nil {
		return false
	}
	ctx := f.c
	id := HashID(f.seed(), label)
	text := visibleLabel(label)
	tw, th := ctx.measure(text, 0)
	box := th + 2*ctx.style.FramePadding[1]

	changed := false
	if ctx.touch(id).clicked {
		*v = !*v
		changed = true
	}
	i := ctx.emit(cmd{kind: cmdCheckbox, id: id, text: text, color: ctx.style.Text, checked: *v})
	if i >= 0 {
		w := box
		if tw > 0 {
			w += ctx.style.ItemSpacing + tw
		}
		ctx.addItem(item{iCmd: i, w: w, h: box})
	}
	return changed
}

// ===== InputText =====

// InputText edits *buf while focused and reports whether it changed. A
// click focuses the field; Enter, Escape or a click elsewhere release it.
func (f *Frame) InputText(label string, buf *string) bool {
	if !f.live() || buf == nil {
		return false
	}
	ctx := f.c
	id := HashID(f.seed(), label)
	ctx.touch(id)

	changed := false
	if ctx.focusID == id {
		for _, r := range ctx.chars {
			*buf += string(r)
			changed = true
		}
		if ctx.keys[KeyBackspace] && len(*buf) > 0 {
			_, n := utf8.DecodeLastRuneInString(*buf)
			*buf = (*buf)[:len(*buf)-n]
			changed = true
		}
		if ctx.keys[KeyEnter] || ctx.keys[KeyEscape] {
			ctx.focusID = 0
		}
	}

	_, th := ctx.measure(*buf, 0)
	pad := ctx.style.FramePadding
	i := ctx.emit(cmd{kind: cmdInputText, id: id, text: *buf, color: ctx.style.Text})
	if i >= 0 {
		ctx.addItem(item{iCmd: i, w: ctx.style.InputWidth, h: th + 2*pad[1]})
	}
	return changed
}

// ===== Image =====

// Image draws a registered texture at w×h using its full extent.
func (f *Frame) Image(tex TextureID, w, h float32) {
	f.ImageUV(tex, w, h, [4]float32{0, 0, 1, 1})
}

func (f *Frame) ImageUV(tex TextureID, w, h float32, uv [4]float32) {
	if !f.live() {
		return
	}
	ctx := f.c
	i := ctx.emit(cmd{kind: cmdImage, texture: tex, uv: uv, color: colors.White})
	if i >= 0 {
		ctx.addItem(item{iCmd: i, w: w, h: h})
	}
}

// ===== Separator =====

func (f *Frame) Separator() {
	if !f.live() {
		return
	}
	ctx := f.c
	i := ctx.emit(cmd{kind: cmdSeparator, color: ctx.style.Separator})
	if i >= 0 {
		ctx.addItem(item{kind: itemRule, iCmd: i, w: 1, h: 1})
	}
}

// touch marks the widget as recorded this frame and returns its state.
func (c *Context) touch(id ID) widgetState {
	st := c.state[id]
	st.seen = c.frame.seq
	c.state[id] = st
	return st
}

// ===== Resolve & draw =====

func (c *Context) resolve(cm *cmd) {
	if !cm.kind.interactive() {
		return
	}
	st := c.state[cm.id]
	r := rect{cm.x, cm.y, cm.w, cm.h}
	hot := c.io.hasMouse && r.contains(c.io.MousePos[0], c.io.MousePos[1])

	if c.clicked[0] && hot {
		st.active = true
		c.activeID = cm.id
		if cm.kind == cmdInputText {
			c.focusID = cm.id
		}
	} else if c.clicked[0] && c.focusID == cm.id {
		c.focusID = 0
	}
	st.clicked = false
	if c.released[0] {
		st.clicked = st.active && hot
		st.active = false
	}
	st.hot = hot
	c.state[cm.id] = st

	cm.hot, cm.active = st.hot, st.active
	cm.focused = c.focusID == cm.id
}

// forget drops state of widgets that were not recorded in frame seq and
// releases focus or activity they held.
func (c *Context) forget(seq uint64) {
	for id, st := range c.state {
		if st.seen == seq {
			continue
		}
		delete(c.state, id)
		if c.focusID == id {
			c.focusID = 0
		}
		if c.activeID == id {
			c.activeID = 0
		}
	}
}

func (c *Context) appendDraw(out []DrawCmd, cm *cmd) []DrawCmd {
	s := &c.style
	text := func(x, y float32, str string, col colors.Color) {
		if str == "" {
			return
		}
		w, h := c.measure(str, cm.fontSize)
		out = append(out, DrawCmd{Kind: DrawText, X: x, Y: y, W: w, H: h, Color: col,
			Texture: FontTextureID, Text: str, FontSize: c.fontSize(cm)})
	}
	fill := func(x, y, w, h float32, col colors.Color) {
		out = append(out, DrawCmd{Kind: DrawRect, X: x, Y: y, W: w, H: h, Color: col})
	}

	switch cm.kind {
	case cmdBgQuad:
		fill(cm.x, cm.y, cm.w, cm.h, cm.bg)
	case cmdLabel:
		text(cm.x, cm.y, cm.text, cm.color)
	case cmdButton:
		bg := s.Button
		switch {
		case cm.active:
			bg = s.ButtonActive
		case cm.hot:
			bg = s.ButtonHovered
		}
		fill(cm.x, cm.y, cm.w, cm.h, bg)
		tw, th := c.measure(cm.text, cm.fontSize)
		text(cm.x+(cm.w-tw)*0.5, cm.y+(cm.h-th)*0.5, cm.text, cm.color)
	case cmdCheckbox:
		box := cm.h
		bg := s.FrameBg
		if cm.hot {
			bg = s.FrameBgHovered
		}
		fill(cm.x, cm.y, box, box, bg)
		if cm.checked {
			in := box / 4
			fill(cm.x+in, cm.y+in, box-2*in, box-2*in, s.CheckMark)
		}
		_, th := c.measure(cm.text, cm.fontSize)
		text(cm.x+box+s.ItemSpacing, cm.y+(cm.h-th)*0.5, cm.text, cm.color)
	case cmdInputText:
		bg := s.FrameBg
		if cm.hot || cm.focused {
			bg = s.FrameBgHovered
		}
		fill(cm.x, cm.y, cm.w, cm.h, bg)
		pad := s.FramePadding
		text(cm.x+pad[0], cm.y+pad[1], cm.text, cm.color)
		if cm.focused {
			tw, th := c.measure(cm.text, cm.fontSize)
			fill(cm.x+pad[0]+tw, cm.y+pad[1], 1, th, cm.color)
		}
	case cmdImage:
		out = append(out, DrawCmd{Kind: DrawImage, X: cm.x, Y: cm.y, W: cm.w, H: cm.h,
			Color: cm.color, Texture: cm.texture, UV: cm.uv})
	case cmdSeparator:
		fill(cm.x, cm.y, cm.w, cm.h, cm.color)
	}
	return out
}

func (c *Context) fontSize(cm *cmd) float32 {
	if cm.fontSize > 0 {
		return cm.fontSize
	}
	return c.style.FontSize
}

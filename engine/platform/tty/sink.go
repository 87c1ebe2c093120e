package tty

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

// ImageRune fills cells covered by an image.
const ImageRune = '▒'

// Sink draws UI draw data into a tcell screen. Rects snap to the nearest
// cell edges; text is placed on the row holding its vertical center.
type Sink struct {
	screen tcell.Screen
}

func NewSink(s tcell.Screen) *Sink { return &Sink{screen: s} }

func (s *Sink) Submit(_ context.Context, data *ui.DrawData, _ []core.Texture) error {
	if data.Empty() {
		return nil
	}
	cols, rows := s.screen.Size()
	for i := range data.Cmds {
		c := &data.Cmds[i]
		switch c.Kind {
		case ui.DrawRect:
			s.fill(c, cols, rows, ' ')
		case ui.DrawImage:
			s.fill(c, cols, rows, ImageRune)
		case ui.DrawText:
			s.text(c, cols, rows)
		}
	}
	return nil
}

// cells returns the half-open cell range covered by a pixel rect. A rect
// with positive size covers at least one cell.
func cells(x, y, w, h float32) (c0, r0, c1, r1 int) {
	c0 = int(math.Round(float64(x / CellW)))
	r0 = int(math.Round(float64(y / CellH)))
	c1 = int(math.Round(float64((x + w) / CellW)))
	r1 = int(math.Round(float64((y + h) / CellH)))
	if w > 0 && c1 <= c0 {
		c1 = c0 + 1
	}
	if h > 0 && r1 <= r0 {
		r1 = r0 + 1
	}
	return
}

func (s *Sink) fill(c *ui.DrawCmd, cols, rows int, fillRune rune) {
	c0, r0, c1, r1 := cells(c.X, c.Y, c.W, c.H)
	for y := max(r0, 0); y < min(r1, rows); y++ {
		for x := max(c0, 0); x < min(c1, cols); x++ {
			_, _, style, _ := s.screen.GetContent(x, y)
			fg, bg, _ := style.Decompose()
			if fillRune == ' ' {
				style = style.Background(toTcell(c.Color.Over(fromTcell(bg))))
			} else {
				style = style.Foreground(toTcell(c.Color.Over(fromTcell(fg))))
			}
			s.screen.SetContent(x, y, fillRune, nil, style)
		}
	}
}

func (s *Sink) text(c *ui.DrawCmd, cols, rows int) {
	row := int((c.Y + c.H/2) / CellH)
	if c.Y+c.H/2 < 0 || row >= rows {
		return
	}
	col := int(math.Round(float64(c.X / CellW)))
	for _, r := range c.Text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= cols {
			return
		}
		if col >= 0 {
			_, _, style, _ := s.screen.GetContent(col, row)
			s.screen.SetContent(col, row, r, nil, style.Foreground(toTcell(c.Color)))
		}
		col += w
	}
}

package input

import "github.com/hubastard/grove/engine/core"

// State tracks held keys, buttons and the cursor from raw platform input.
type State struct {
	keys           [core.KeyCount]bool
	buttons        [core.MouseButtonCount]bool
	mods           core.Mod
	mouseX, mouseY float64
	hasMouse       bool
}

func NewState() *State { return &State{} }

func (in *State) Handle(ev core.Event) {
	switch e := ev.(type) {
	case core.EventKey:
		if e.Key > core.KeyUnknown && int(e.Key) < core.KeyCount {
			in.keys[e.Key] = e.Down
		}
		in.mods = e.Mods
	case core.EventMouseButton:
		if int(e.Button) < core.MouseButtonCount {
			in.buttons[e.Button] = e.Down
		}
	case core.EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
		in.hasMouse = true
	case core.EventFocus:
		if !e.Focused {
			in.keys = [core.KeyCount]bool{}
			in.buttons = [core.MouseButtonCount]bool{}
			in.mods = core.ModNone
		}
	}
}

func (in *State) IsKeyDown(k core.Key) bool {
	return k > core.KeyUnknown && int(k) < core.KeyCount && in.keys[k]
}
func (in *State) IsButtonDown(b core.MouseButton) bool {
	return int(b) < core.MouseButtonCount && in.buttons[b]
}
func (in *State) Mods() core.Mod            { return in.mods }
func (in *State) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

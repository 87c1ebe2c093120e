// Package input translates platform events into application input events
// keyed by an application-defined action type.
package input

import (
	"fmt"

	"github.com/hubastard/grove/engine/core"
)

// Kind is the variant of an input Event.
type Kind int

const (
	KindKeyPressed Kind = iota
	KindKeyReleased
	KindKeyTyped
	KindMouseButtonPressed
	KindMouseButtonReleased
	KindMouseMoved  // relative motion
	KindCursorMoved // absolute position
	KindMouseWheelMoved
	KindActionPressed
	KindActionReleased
	KindWindowFocus
	// KindCustom is reserved for application-generated events.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindKeyPressed:
		return "KeyPressed"
	case KindKeyReleased:
		return "KeyReleased"
	case KindKeyTyped:
		return "KeyTyped"
	case KindMouseButtonPressed:
		return "MouseButtonPressed"
	case KindMouseButtonReleased:
		return "MouseButtonReleased"
	case KindMouseMoved:
		return "MouseMoved"
	case KindCursorMoved:
		return "CursorMoved"
	case KindMouseWheelMoved:
		return "MouseWheelMoved"
	case KindActionPressed:
		return "ActionPressed"
	case KindActionReleased:
		return "ActionReleased"
	case KindWindowFocus:
		return "WindowFocus"
	case KindCustom:
		return "Custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is an application input event for the binding scheme A.
// Only the fields relevant to Kind are set.
type Event[A comparable] struct {
	Kind   Kind
	Key    core.Key
	Mods   core.Mod
	Rune   rune
	Button core.MouseButton
	X, Y   float64 // cursor position, or motion delta for KindMouseMoved
	Wheel  [2]float64
	Focus  bool
	Action A
	Custom any
}

func (e Event[A]) String() string {
	switch e.Kind {
	case KindKeyPressed, KindKeyReleased:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Key)
	case KindKeyTyped:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Rune)
	case KindMouseButtonPressed, KindMouseButtonReleased:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Button)
	case KindMouseMoved, KindCursorMoved:
		return fmt.Sprintf("%s(%.0f,%.0f)", e.Kind, e.X, e.Y)
	case KindMouseWheelMoved:
		return fmt.Sprintf("%s(%.1f,%.1f)", e.Kind, e.Wheel[0], e.Wheel[1])
	case KindActionPressed, KindActionReleased:
		return fmt.Sprintf("%s(%v)", e.Kind, e.Action)
	default:
		return e.Kind.String()
	}
}

// Key helpers used by tests and tools.

func KeyPressed[A comparable](k core.Key) Event[A] { return Event[A]{Kind: KindKeyPressed, Key: k} }
func KeyReleased[A comparable](k core.Key) Event[A] {
	return Event[A]{Kind: KindKeyReleased, Key: k}
}
func MouseMoved[A comparable](dx, dy float64) Event[A] {
	return Event[A]{Kind: KindMouseMoved, X: dx, Y: dy}
}
func Custom[A comparable](v any) Event[A] { return Event[A]{Kind: KindCustom, Custom: v} }

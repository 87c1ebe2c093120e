package input

import (
	"errors"
	"fmt"

	"github.com/hubastard/grove/engine/core"
)

var (
	ErrUnboundAction    = errors.New("action has no bindings")
	ErrDuplicateBinding = errors.New("combo bound twice")
)

// Combo is one way to trigger an action: a key or a mouse button, plus
// required modifiers.
type Combo struct {
	Key    core.Key
	Button core.MouseButton
	Mouse  bool // Button is used instead of Key
	Mods   core.Mod
}

func KeyCombo(k core.Key, mods core.Mod) Combo { return Combo{Key: k, Mods: mods} }
func ButtonCombo(b core.MouseButton) Combo     { return Combo{Button: b, Mouse: true} }

// Bindings maps actions of type A to their combos.
type Bindings[A comparable] struct {
	actions []A
	combos  map[A][]Combo
}

func NewBindings[A comparable]() *Bindings[A] {
	return &Bindings[A]{combos: make(map[A][]Combo)}
}

// Bind adds combos to action.
func (b *Bindings[A]) Bind(action A, combos ...Combo) *Bindings[A] {
	if _, ok := b.combos[action]; !ok {
		b.actions = append(b.actions, action)
	}
	b.combos[action] = append(b.combos[action], combos...)
	return b
}

// Validate reports actions without combos and combos bound to two actions.
func (b *Bindings[A]) Validate() error {
	seen := make(map[Combo]A)
	for _, a := range b.actions {
		cs := b.combos[a]
		if len(cs) == 0 {
			return fmt.Errorf("%w: %v", ErrUnboundAction, a)
		}
		for _, c := range cs {
			if prev, ok := seen[c]; ok && prev != a {
				return fmt.Errorf("%w: %+v (%v, %v)", ErrDuplicateBinding, c, prev, a)
			}
			seen[c] = a
		}
	}
	return nil
}

// match returns the actions whose combos are satisfied by c.
func (b *Bindings[A]) match(c Combo) []A {
	var out []A
	for _, a := range b.actions {
		for _, bc := range b.combos[a] {
			if bc.Mouse != c.Mouse {
				continue
			}
			if bc.Mouse && bc.Button != c.Button {
				continue
			}
			if !bc.Mouse && bc.Key != c.Key {
				continue
			}
			if c.Mods&bc.Mods != bc.Mods {
				continue
			}
			out = append(out, a)
			break
		}
	}
	return out
}

package overlay

import (
	"context"
	"sync/atomic"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/ui"
)

// FilteredEvent is an application input event the UI did not capture.
type FilteredEvent[A comparable] struct {
	Event input.Event[A]
}

// Class decides which capture flag gates an event.
type Class int

const (
	// ClassPassThrough events are never captured.
	ClassPassThrough Class = iota
	ClassMouse
	ClassKeyboard
)

// ClassifyFunc maps an event to its class.
type ClassifyFunc[A comparable] func(ev input.Event[A]) Class

// DefaultClassify gates pointer motion, buttons and wheel on the mouse
// claim and key presses and releases on the keyboard claim. Typed text,
// absolute cursor updates, actions, focus and custom events pass through.
func DefaultClassify[A comparable](ev input.Event[A]) Class {
	switch ev.Kind {
	case input.KindMouseMoved, input.KindMouseButtonPressed,
		input.KindMouseButtonReleased, input.KindMouseWheelMoved:
		return ClassMouse
	case input.KindKeyPressed, input.KindKeyReleased:
		return ClassKeyboard
	default:
		return ClassPassThrough
	}
}

// Forward reports whether an event of class c reaches the application
// under flags.
func Forward(c Class, flags ui.CaptureFlags) bool {
	switch c {
	case ClassMouse:
		return !flags.WantMouse
	case ClassKeyboard:
		return !flags.WantKeyboard
	default:
		return true
	}
}

// Classifier republishes the events of one binding scheme that the UI did
// not capture. It runs in core.StageBegin against the claim the plugin
// recorded when the stage opened.
type Classifier[A comparable] struct {
	name     string
	shared   *SharedState
	in       *core.EventChannel[input.Event[A]]
	reader   core.ReaderID
	out      *core.EventChannel[FilteredEvent[A]]
	classify ClassifyFunc[A]
	batch    []FilteredEvent[A]

	forwarded atomic.Uint64
	captured  atomic.Uint64
}

// NewClassifier registers a reader on in. A nil classify uses DefaultClassify.
func NewClassifier[A comparable](name string, shared *SharedState, in *core.EventChannel[input.Event[A]], out *core.EventChannel[FilteredEvent[A]], classify ClassifyFunc[A]) *Classifier[A] {
	if classify == nil {
		classify = DefaultClassify[A]
	}
	return &Classifier[A]{
		name:     name,
		shared:   shared,
		in:       in,
		reader:   in.Register(),
		out:      out,
		classify: classify,
	}
}

func (c *Classifier[A]) Name() string { return "overlay.classify." + c.name }

// Events returns the filtered channel.
func (c *Classifier[A]) Events() *core.EventChannel[FilteredEvent[A]] { return c.out }

// Stats reports how many events were forwarded and captured so far.
func (c *Classifier[A]) Stats() (forwarded, captured uint64) {
	return c.forwarded.Load(), c.captured.Load()
}

func (c *Classifier[A]) Run(context.Context, *core.World) error {
	c.Classify(c.in.Read(c.reader), c.shared.Capture())
	return nil
}

// Classify forwards the events of evs that pass flags, in order.
func (c *Classifier[A]) Classify(evs []input.Event[A], flags ui.CaptureFlags) {
	batch := c.batch[:0]
	for _, ev := range evs {
		if Forward(c.classify(ev), flags) {
			batch = append(batch, FilteredEvent[A]{Event: ev})
		}
	}
	c.out.WriteAll(batch)
	c.forwarded.Add(uint64(len(batch)))
	c.captured.Add(uint64(len(evs) - len(batch)))
	clear(batch)
	c.batch = batch[:0]
}

// Close releases the classifier's reader.
func (c *Classifier[A]) Close() { c.in.Unregister(c.reader) }

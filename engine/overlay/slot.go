package overlay

import (
	"context"
	"errors"
	"sync"

	"github.com/hubastard/grove/engine/ui"
)

var (
	// ErrFrameActive is returned by Begin while another frame is open.
	ErrFrameActive = errors.New("overlay: frame already active")
	// ErrSlotClosed is returned by Begin after Shutdown.
	ErrSlotClosed = errors.New("overlay: frame slot closed")
)

// FrameSlot publishes the frame being built to code running inside the
// build phase. The frame travels in the context returned by Begin; each
// Begin starts a new generation, so contexts kept past their frame no
// longer reach a frame.
type FrameSlot struct {
	mu     sync.Mutex
	frame  *ui.Frame
	gen    uint64
	closed bool
}

type frameKey struct{}

type frameRef struct {
	slot  *FrameSlot
	gen   uint64
	frame *ui.Frame
}

// Begin opens the slot for f and returns the context that carries it. The
// release func closes the slot again; it is safe to call more than once
// and must be called on every exit path.
func (s *FrameSlot) Begin(ctx context.Context, f *ui.Frame) (context.Context, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return ctx, func() {}, ErrSlotClosed
	case s.frame != nil:
		return ctx, func() {}, ErrFrameActive
	}
	s.gen++
	s.frame = f
	ref := &frameRef{slot: s, gen: s.gen, frame: f}

	var once sync.Once
	release := func() { once.Do(func() { s.end(ref.gen) }) }
	return context.WithValue(ctx, frameKey{}, ref), release, nil
}

func (s *FrameSlot) end(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.frame = nil
	}
}

// Active reports whether a frame is open.
func (s *FrameSlot) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame != nil
}

// With calls fn with the frame carried by ctx if it is this slot's open
// frame, and reports whether fn ran. Outside a frame it does nothing.
func (s *FrameSlot) With(ctx context.Context, fn func(f *ui.Frame)) bool {
	ref, _ := ctx.Value(frameKey{}).(*frameRef)
	if ref == nil || ref.slot != s {
		return false
	}
	s.mu.Lock()
	ok := !s.closed && s.frame == ref.frame && s.gen == ref.gen
	s.mu.Unlock()
	if !ok {
		return false
	}
	fn(ref.frame)
	return true
}

// Shutdown closes any open frame and rejects later ones.
func (s *FrameSlot) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.frame = nil
}

// With calls fn with the UI frame carried by ctx, if any is open. UI code
// deep in the build phase uses it without access to the plugin.
func With(ctx context.Context, fn func(f *ui.Frame)) bool {
	ref, _ := ctx.Value(frameKey{}).(*frameRef)
	if ref == nil {
		return false
	}
	return ref.slot.With(ctx, fn)
}

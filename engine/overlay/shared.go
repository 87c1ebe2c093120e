// Package overlay bridges the immediate-mode ui package into the engine's
// frame pipeline: it classifies input against the UI's capture claim, opens
// one UI frame around the logic stage and draws the result as an overlay.
package overlay

import (
	"sync"
	"sync/atomic"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

// SharedState owns the single ui.Context of the application and the
// textures draw commands may reference. The context is reachable only
// inside WithExclusiveAccess.
type SharedState struct {
	mu       sync.Mutex
	ctx      *ui.Context
	platform *Platform
	capture  atomic.Pointer[ui.CaptureFlags]

	texMu    sync.RWMutex
	textures []core.Texture
}

func NewSharedState(c *ui.Context) *SharedState {
	if c == nil {
		c = ui.NewContext(ui.Options{})
	}
	return &SharedState{ctx: c}
}

// WithExclusiveAccess runs f with the context. Callers block until no other
// holder remains; f must not retain c or call back into s.
func WithExclusiveAccess[R any](s *SharedState, f func(c *ui.Context) R) R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.ctx)
}

// Do is WithExclusiveAccess for callbacks that only report an error.
func (s *SharedState) Do(f func(c *ui.Context) error) error {
	return WithExclusiveAccess(s, f)
}

// RegisterTexture appends t and returns the id draw commands use for it.
// Ids are stable for the session.
func (s *SharedState) RegisterTexture(t core.Texture) ui.TextureID {
	s.texMu.Lock()
	defer s.texMu.Unlock()
	s.textures = append(s.textures, t)
	return ui.TextureID(len(s.textures))
}

// Textures returns the registered textures in registration order; the
// texture with id n is at index n-1.
func (s *SharedState) Textures() []core.Texture {
	s.texMu.RLock()
	defer s.texMu.RUnlock()
	out := make([]core.Texture, len(s.textures))
	copy(out, s.textures)
	return out
}

// Texture resolves a texture id. The font atlas and NoTexture are not
// registered textures.
func (s *SharedState) Texture(id ui.TextureID) (core.Texture, bool) {
	s.texMu.RLock()
	defer s.texMu.RUnlock()
	if id == ui.NoTexture || int(id) > len(s.textures) {
		return nil, false
	}
	return s.textures[id-1], true
}

// sync feeds pending platform events into the context and records the
// capture claim this frame's input is classified against. It runs once per
// frame, before any classifier.
func (s *SharedState) sync() ui.CaptureFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	io := s.ctx.IO()
	if s.platform != nil {
		s.platform.Feed(io)
	}
	s.ctx.UpdateCapture()
	flags := io.CaptureFlags()
	s.capture.Store(&flags)
	return flags
}

// Capture returns the claim recorded at the start of the current frame.
// It is the zero claim until the first frame.
func (s *SharedState) Capture() ui.CaptureFlags {
	if f := s.capture.Load(); f != nil {
		return *f
	}
	return ui.CaptureFlags{}
}

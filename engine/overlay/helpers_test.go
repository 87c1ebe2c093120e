package overlay

import (
	"context"
	"sync"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

type fakeWindow struct {
	fb, win [2]int
	scale   [2]float32
	cb      func(core.Event)
	closed  bool
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{fb: [2]int{800, 600}, win: [2]int{800, 600}, scale: [2]float32{1, 1}}
}

func (w *fakeWindow) PollEvents()                          {}
func (w *fakeWindow) SwapBuffers()                         {}
func (w *fakeWindow) ShouldClose() bool                    { return w.closed }
func (w *fakeWindow) RequestClose()                        { w.closed = true }
func (w *fakeWindow) FramebufferSize() (int, int)          { return w.fb[0], w.fb[1] }
func (w *fakeWindow) WindowSize() (int, int)               { return w.win[0], w.win[1] }
func (w *fakeWindow) ContentScale() (float32, float32)     { return w.scale[0], w.scale[1] }
func (w *fakeWindow) SetTitle(string)                      {}
func (w *fakeWindow) SetEventCallback(cb func(core.Event)) { w.cb = cb }

type fakeTexture struct{ N uint32 }

func (t fakeTexture) ID() uint32       { return t.N }
func (t fakeTexture) Size() (int, int) { return 16, 16 }

// recordSink keeps every submitted frame.
type recordSink struct {
	mu     sync.Mutex
	frames []*ui.DrawData
	tex    [][]core.Texture
}

func (s *recordSink) Submit(_ context.Context, data *ui.DrawData, textures []core.Texture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, data)
	s.tex = append(s.tex, textures)
	return nil
}

func (s *recordSink) last() *ui.DrawData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

type host struct {
	world    *core.World
	disp     *core.Dispatcher
	win      *fakeWindow
	platform *core.EventChannel[core.Event]
	sink     *recordSink
}

// newHost returns a world holding every resource the plugin requires.
func newHost() *host {
	h := &host{
		world:    core.NewWorld(),
		disp:     core.NewDispatcher(nil),
		win:      newFakeWindow(),
		platform: core.NewEventChannel[core.Event](),
		sink:     &recordSink{},
	}
	core.Insert[core.Window](h.world, h.win)
	core.Insert(h.world, h.platform)
	core.Insert[Sink](h.world, h.sink)
	return h
}

package overlay

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

func TestExclusiveAccessNeverOverlaps(t *testing.T) {
	s := NewSharedState(nil)
	var inside, overlaps, calls atomic.Int32

	const workers, rounds = 16, 200
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				WithExclusiveAccess(s, func(c *ui.Context) struct{} {
					if inside.Add(1) != 1 {
						overlaps.Add(1)
					}
					calls.Add(1)
					// Mix the phases that touch the context.
					if (i+j)%2 == 0 {
						c.UpdateCapture()
					} else {
						c.NewFrame().Label("x")
						c.Render()
					}
					inside.Add(-1)
					return struct{}{}
				})
			}
		}(i)
	}
	wg.Wait()

	if n := overlaps.Load(); n != 0 {
		t.Fatalf("%d overlapping holders", n)
	}
	if n := calls.Load(); n != workers*rounds {
		t.Fatalf("%d calls, want %d", n, workers*rounds)
	}
}

func TestWithExclusiveAccessReturnsValue(t *testing.T) {
	s := NewSharedState(nil)
	got := WithExclusiveAccess(s, func(c *ui.Context) uint64 {
		c.NewFrame()
		c.Render()
		return c.FrameCount()
	})
	if got != 1 {
		t.Fatalf("FrameCount() = %d, want 1", got)
	}
}

func TestTexturesKeepRegistrationOrder(t *testing.T) {
	s := NewSharedState(nil)
	var want []core.Texture
	for i := 1; i <= 4; i++ {
		tex := fakeTexture{N: uint32(100 + i)}
		if id := s.RegisterTexture(tex); id != ui.TextureID(i) {
			t.Fatalf("RegisterTexture() = %d, want %d", id, i)
		}
		want = append(want, tex)
	}

	snap := s.Textures()
	snap[0] = nil // callers own their copy
	for frame := 0; frame < 3; frame++ {
		s.Do(func(c *ui.Context) error {
			c.NewFrame().Image(2, 8, 8)
			c.Render()
			return nil
		})
		if diff := cmp.Diff(s.Textures(), want); diff != "" {
			t.Fatalf("frame %d Diff (-got +want):\n%s", frame, diff)
		}
	}

	if tex, ok := s.Texture(3); !ok || tex != want[2] {
		t.Errorf("Texture(3) = %v, %v", tex, ok)
	}
	for _, id := range []ui.TextureID{ui.NoTexture, ui.FontTextureID, 5} {
		if _, ok := s.Texture(id); ok {
			t.Errorf("Texture(%d) resolved", id)
		}
	}
}

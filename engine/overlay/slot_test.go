package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/hubastard/grove/engine/ui"
)

func TestSlotWindow(t *testing.T) {
	var slot FrameSlot
	c := ui.NewContext(ui.Options{})
	ctx := context.Background()
	calls := 0
	call := func(f *ui.Frame) { calls++ }

	if slot.With(ctx, call) || With(ctx, call) {
		t.Fatal("callback ran before the first frame")
	}

	f := c.NewFrame()
	fctx, release, err := slot.Begin(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Active() {
		t.Fatal("slot not active after Begin")
	}
	var got *ui.Frame
	if !With(fctx, func(f *ui.Frame) { got = f }) || got != f {
		t.Fatal("callback did not receive the open frame")
	}
	if slot.With(ctx, call) {
		t.Fatal("context without the frame reached it")
	}
	c.Render()
	release()
	release()

	if slot.With(fctx, call) || With(fctx, call) {
		t.Fatal("retained context reached a finished frame")
	}

	// A retained context must not reach the next frame either.
	_, release2, err := slot.Begin(ctx, c.NewFrame())
	if err != nil {
		t.Fatal(err)
	}
	if slot.With(fctx, call) {
		t.Fatal("retained context reached a later frame")
	}
	release()
	if !slot.Active() {
		t.Fatal("stale release closed a later frame")
	}
	release2()

	if calls != 0 {
		t.Fatalf("callback ran %d times outside a frame", calls)
	}
}

func TestSlotRejectsNestedBegin(t *testing.T) {
	var slot FrameSlot
	c := ui.NewContext(ui.Options{})
	ctx := context.Background()

	h1 := c.NewFrame()
	fctx, release, err := slot.Begin(ctx, h1)
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	h2 := &ui.Frame{}
	if _, _, err := slot.Begin(ctx, h2); !errors.Is(err, ErrFrameActive) {
		t.Fatalf("second Begin: err = %v, want %v", err, ErrFrameActive)
	}
	var got *ui.Frame
	slot.With(fctx, func(f *ui.Frame) { got = f })
	if got != h1 {
		t.Fatal("nested Begin replaced the open frame")
	}
}

func TestSlotShutdown(t *testing.T) {
	var slot FrameSlot
	c := ui.NewContext(ui.Options{})
	ctx := context.Background()

	fctx, release, err := slot.Begin(ctx, c.NewFrame())
	if err != nil {
		t.Fatal(err)
	}
	slot.Shutdown()
	if slot.Active() || With(fctx, func(*ui.Frame) {}) {
		t.Fatal("frame survived Shutdown")
	}
	release()
	if _, _, err := slot.Begin(ctx, c.NewFrame()); !errors.Is(err, ErrSlotClosed) {
		t.Fatalf("Begin after Shutdown: err = %v, want %v", err, ErrSlotClosed)
	}
}

func TestWithSeparatesSlots(t *testing.T) {
	var a, b FrameSlot
	c := ui.NewContext(ui.Options{})
	actx, release, err := a.Begin(context.Background(), c.NewFrame())
	if err != nil {
		t.Fatal(err)
	}
	defer release()
	if b.With(actx, func(*ui.Frame) {}) {
		t.Fatal("slot b reached slot a's frame")
	}
}

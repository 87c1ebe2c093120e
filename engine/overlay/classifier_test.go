package overlay

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/input"
	"github.com/hubastard/grove/engine/ui"
)

type camAction int

const (
	camZoom camAction = iota
	camPan
)

type menuAction string

func newTestClassifier[A comparable](classify ClassifyFunc[A]) (*Classifier[A], *core.EventChannel[input.Event[A]], *core.EventChannel[FilteredEvent[A]], core.ReaderID) {
	in := core.NewEventChannel[input.Event[A]]()
	out := core.NewEventChannel[FilteredEvent[A]]()
	r := out.Register()
	c := NewClassifier("test", NewSharedState(nil), in, out, classify)
	return c, in, out, r
}

func unwrap[A comparable](evs []FilteredEvent[A]) []input.Event[A] {
	out := make([]input.Event[A], len(evs))
	for i, ev := range evs {
		out[i] = ev.Event
	}
	return out
}

func TestClassify(t *testing.T) {
	all := []input.Event[camAction]{
		input.MouseMoved[camAction](1, 2),
		{Kind: input.KindMouseButtonPressed, Button: core.MouseLeft},
		input.KeyPressed[camAction](core.KeyA),
		{Kind: input.KindMouseWheelMoved, Wheel: [2]float64{0, 1}},
		{Kind: input.KindKeyTyped, Rune: 'a'},
		{Kind: input.KindCursorMoved, X: 5, Y: 6},
		{Kind: input.KindActionPressed, Action: camZoom},
		input.KeyReleased[camAction](core.KeyA),
		{Kind: input.KindMouseButtonReleased, Button: core.MouseLeft},
		{Kind: input.KindWindowFocus, Focus: true},
		input.Custom[camAction]("tick"),
	}
	pick := func(idx ...int) []input.Event[camAction] {
		out := make([]input.Event[camAction], len(idx))
		for i, j := range idx {
			out[i] = all[j]
		}
		return out
	}

	tests := []struct {
		name  string
		flags ui.CaptureFlags
		want  []input.Event[camAction]
	}{
		{"nothing captured", ui.CaptureFlags{}, all},
		{"mouse captured", ui.CaptureFlags{WantMouse: true}, pick(2, 4, 5, 6, 7, 9, 10)},
		{"keyboard captured", ui.CaptureFlags{WantKeyboard: true}, pick(0, 1, 3, 4, 5, 6, 8, 9, 10)},
		{"both captured", ui.CaptureFlags{WantMouse: true, WantKeyboard: true}, pick(4, 5, 6, 9, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, out, r := newTestClassifier[camAction](nil)
			c.Classify(all, tt.flags)
			if diff := cmp.Diff(unwrap(out.Read(r)), tt.want); diff != "" {
				t.Fatalf("Diff (-got +want):\n%s", diff)
			}
			fwd, capt := c.Stats()
			if int(fwd) != len(tt.want) || int(fwd+capt) != len(all) {
				t.Errorf("Stats() = %d, %d", fwd, capt)
			}
		})
	}
}

func TestClassifyScenario(t *testing.T) {
	c, _, out, r := newTestClassifier[camAction](nil)
	batch := []input.Event[camAction]{
		input.MouseMoved[camAction](3, 4),
		input.KeyPressed[camAction](core.KeyA),
		input.Custom[camAction](42),
	}
	c.Classify(batch, ui.CaptureFlags{WantMouse: true})
	want := []input.Event[camAction]{batch[1], batch[2]}
	if diff := cmp.Diff(unwrap(out.Read(r)), want); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
}

func TestClassifyCustomTable(t *testing.T) {
	// Typed text follows the keyboard claim.
	classify := func(ev input.Event[camAction]) Class {
		if ev.Kind == input.KindKeyTyped {
			return ClassKeyboard
		}
		return DefaultClassify(ev)
	}
	c, _, out, r := newTestClassifier(classify)
	typed := input.Event[camAction]{Kind: input.KindKeyTyped, Rune: 'x'}
	c.Classify([]input.Event[camAction]{typed, input.Custom[camAction](nil)}, ui.CaptureFlags{WantKeyboard: true})
	want := []input.Event[camAction]{input.Custom[camAction](nil)}
	if diff := cmp.Diff(unwrap(out.Read(r)), want); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
}

func TestClassifierRunDrainsOwnReader(t *testing.T) {
	c, in, out, r := newTestClassifier[camAction](nil)
	other := in.Register()
	in.WriteAll([]input.Event[camAction]{input.KeyPressed[camAction](core.KeyW), input.KeyReleased[camAction](core.KeyW)})

	for i := 0; i < 2; i++ {
		if err := c.Run(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(out.Read(r)); got != 2 {
		t.Fatalf("forwarded %d events, want 2 exactly once", got)
	}
	if got := in.Pending(other); got != 2 {
		t.Fatalf("other reader lost events: %d pending", got)
	}
	c.Close()
	if in.Pending(c.reader) != 0 {
		t.Fatal("closed reader still registered")
	}
}

func TestIndependentSchemes(t *testing.T) {
	shared := NewSharedState(nil)
	camIn := core.NewEventChannel[input.Event[camAction]]()
	camOut := core.NewEventChannel[FilteredEvent[camAction]]()
	menuIn := core.NewEventChannel[input.Event[menuAction]]()
	menuOut := core.NewEventChannel[FilteredEvent[menuAction]]()
	camR, menuR := camOut.Register(), menuOut.Register()
	cam := NewClassifier("camera", shared, camIn, camOut, nil)
	menu := NewClassifier("menu", shared, menuIn, menuOut, nil)

	camEvents := []input.Event[camAction]{
		{Kind: input.KindActionPressed, Action: camZoom},
		{Kind: input.KindActionPressed, Action: camPan},
		{Kind: input.KindActionReleased, Action: camZoom},
	}
	menuEvents := []input.Event[menuAction]{
		{Kind: input.KindActionPressed, Action: "open"},
		input.KeyPressed[menuAction](core.KeyEscape),
	}
	camIn.WriteAll(camEvents)
	menuIn.WriteAll(menuEvents)

	// Begin-stage systems run concurrently.
	d := core.NewDispatcher(nil)
	d.AddSystem(core.StageBegin, cam)
	d.AddSystem(core.StageBegin, menu)
	if err := d.Build(core.NewWorld()); err != nil {
		t.Fatal(err)
	}
	if err := d.RunFrame(context.Background(), core.NewWorld()); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(unwrap(camOut.Read(camR)), camEvents); diff != "" {
		t.Errorf("camera Diff (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(unwrap(menuOut.Read(menuR)), menuEvents); diff != "" {
		t.Errorf("menu Diff (-got +want):\n%s", diff)
	}
}

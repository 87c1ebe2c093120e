package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventChannelReadersAreIndependent(t *testing.T) {
	c := NewEventChannel[int]()
	a := c.Register()
	c.Write(1)
	b := c.Register()
	c.WriteAll([]int{2, 3})

	if diff := cmp.Diff(c.Read(a), []int{1, 2, 3}); diff != "" {
		t.Fatalf("reader a: Diff (-got +want):\n%s", diff)
	}
	if got := c.Pending(b); got != 2 {
		t.Fatalf("Pending(b) = %d, want 2", got)
	}
	if diff := cmp.Diff(c.Read(b), []int{2, 3}); diff != "" {
		t.Fatalf("reader b: Diff (-got +want):\n%s", diff)
	}
	if got := c.Read(a); got != nil {
		t.Fatalf("second read = %v, want nil", got)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d after every reader caught up", got)
	}
}

func TestEventChannelDropsWithoutReaders(t *testing.T) {
	c := NewEventChannel[string]()
	c.Write("lost")
	r := c.Register()
	c.Write("kept")
	if diff := cmp.Diff(c.Read(r), []string{"kept"}); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
	if got := c.Read(ReaderID(42)); got != nil {
		t.Errorf("unknown reader got %v", got)
	}
}

func TestEventChannelUnregisterReleases(t *testing.T) {
	c := NewEventChannel[int]()
	fast, slow := c.Register(), c.Register()
	c.WriteAll([]int{1, 2, 3})
	c.Read(fast)
	if got := c.Len(); got != 3 {
		t.Fatalf("Len() = %d, slow reader should hold 3", got)
	}
	c.Unregister(slow)
	if got := c.Len(); got != 0 {
		t.Fatalf("Len() = %d after Unregister", got)
	}
	c.Write(4)
	if diff := cmp.Diff(c.Read(fast), []int{4}); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
}

func TestEventChannelReadIsOwned(t *testing.T) {
	c := NewEventChannel[int]()
	r := c.Register()
	c.Write(1)
	got := c.Read(r)
	got[0] = 99
	c.Write(2)
	if diff := cmp.Diff(c.Read(r), []int{2}); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
}
